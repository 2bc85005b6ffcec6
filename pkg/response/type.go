package response

const (
	MessageSuccess = "Success"

	codeOK           = 0
	codeBadRequest   = 1
	codeUnauthorized = 401
	codeForbidden    = 403
)

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}
