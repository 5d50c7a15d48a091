// Package errs defines the error types returned to API clients.
//
// HTTPError is the single response shape for failures: a machine code,
// a human message, the status, optional field-level errors for forms and an
// optional action hint (such as a redirect) the client can follow.
package errs
