// Package httpmw holds the HTTP middleware shared by the API: request ID
// propagation and structured request logging.
package httpmw
