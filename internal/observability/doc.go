// Package observability provides structured logging for the crawler's
// command line and status server.
//
// Loggers are zap-based. The json format targets log aggregation and the
// console format targets local development.
package observability
