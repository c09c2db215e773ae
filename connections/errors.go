package connections

import "fmt"

// TransportError is a failure before a json-rpc envelope was obtained: the
// post itself failed, or the body was not json.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc transport: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a well-formed envelope with an error field; code, message and
// data come through verbatim. Expired or rejected tokens arrive here too and
// are not retried, the caller decides whether to RevokeToken and start over.
type APIError struct {
	Method  string
	Code    int
	Message string
	Data    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rpc error %d: %s: %s", e.Code, e.Method, e.Message)
}
