// Package app wires configuration, logging, metrics, the dataset store,
// services, and HTTP transport into a runnable server.
package app
