// Package httputil provides JSON request/response helpers and the generic
// HTTP middleware chain (request logging, panic recovery, CORS, request
// IDs).
//
// # Response Helpers
//
// The API speaks two failure shapes: a human-readable message
//
//	httputil.WriteMsg(w, http.StatusUnauthorized, "No token found")
//	// -> 401 {"msg":"No token found"}
//
// and field-level validation detail
//
//	httputil.WriteValidationErrors(w, verr.Fields)
//	// -> 400 {"errors":[{"field":"email","msg":"Email must be valid"}]}
//
// # Middleware
//
//	handler := httputil.Chain(
//		httputil.RequestID,
//		httputil.Logging(log),
//		httputil.Recovery(log),
//	)(router)
//
// Recovery guarantees a panicking handler answers 500 instead of taking the
// process down.
package httputil
