// Package client talks to the remote quizzer API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     ListStudySets, CreateStudySet, Register and Close.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) bound to a fixed
//     base URL. Every request carries Content-Type: application/json and an
//     X-Request-ID header; a cookie jar keeps the session cookie so
//     credentials are included on every call.
//
// # Error Handling
//
// Failures are exposed as sentinel errors that callers can match with
// errors.Is: ErrTransport (network failure or unexpected status, see
// StatusError), ErrUnavailable and ErrUnauthorized (both also match
// ErrTransport), and ErrDecode for bodies that do not match the schema.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; a per-request timeout from the
// configuration is applied on top of it.
package client
