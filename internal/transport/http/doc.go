// Package http contains the chi HTTP handlers for the dashboard API.
//
// Handlers parse and validate request input, call into the service layer,
// and render either {"status","data","count"} success envelopes or
// RFC 7807 problem documents through the shared error handler.
package http
