package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// httpBody is the wire shape for errors returned to HTTP clients.
type httpBody struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// WriteHTTP writes an error response with the status derived from the
// error code. Non-structured errors are reported as INTERNAL without
// leaking the underlying message.
func WriteHTTP(w http.ResponseWriter, err error) {
	body := httpBody{
		Code:    CodeInternal,
		Message: "internal error",
	}

	var structured *Error
	if errors.As(err, &structured) {
		body.Code = structured.Code
		body.Message = structured.Message
		body.Meta = structured.Meta
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Code.HTTPStatus())
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
