// Package api is the HTTP transport to the NatMan backend.
//
// # Overview
//
// Client issues JSON requests against one fixed base URL. Every call is a
// single attempt: there are no retries. A per-call timeout can be applied
// with WithTimeout; calls without it are bounded only by their context.
//
// # Error Handling
//
// Failures are normalized into two kinds that callers match with errors.As:
//
//   - *common.NetworkError: no HTTP response was received.
//   - *common.ServerError: a non-2xx response (Detail carries the server's
//     "detail" message when present) or an undecodable success body.
//
// Every request carries an X-Request-ID header (a random UUID) which is also
// attached to log records.
package api
