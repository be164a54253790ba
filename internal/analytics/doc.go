// Package analytics implements the aggregation engine behind the
// sustainability dashboard. Every function in this package is a pure
// computation over in-memory slices: no I/O, no logging, no shared state,
// and no error returns. Data-quality problems (missing measures, unusable
// fiscal years, empty inputs, zero denominators) are absorbed by explicit
// zero-value policies so that downstream display code never has to handle
// NaN, infinity, or partial failure.
//
// The engine consumes typed rows produced by the dataset package; loose CSV
// coercion happens there, at the ingestion boundary, so that everything in
// this package stays total.
package analytics
