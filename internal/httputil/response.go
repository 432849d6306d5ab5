package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON marshals data before touching the writer, so an encoding
// failure still yields a clean 500 rather than a truncated body.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// RespondData wraps a record or list in {"data": ...}
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, envelope{Data: data})
}

// RespondMessage writes {"message": ...}; deletes answer with it
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

type envelope struct {
	Data interface{} `json:"data"`
}

// ProblemDetail is the RFC 7807 body every failed request returns
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// problemTypes covers the statuses the API produces
var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://www.rfc-editor.org/rfc/rfc9110#status.400",
	http.StatusNotFound:              "https://www.rfc-editor.org/rfc/rfc9110#status.404",
	http.StatusConflict:              "https://www.rfc-editor.org/rfc/rfc9110#status.409",
	http.StatusRequestEntityTooLarge: "https://www.rfc-editor.org/rfc/rfc9110#status.413",
	http.StatusInternalServerError:   "https://www.rfc-editor.org/rfc/rfc9110#status.500",
	http.StatusBadGateway:            "https://www.rfc-editor.org/rfc/rfc9110#status.502",
	http.StatusServiceUnavailable:    "https://www.rfc-editor.org/rfc/rfc9110#status.503",
}

// NewProblem builds the problem document for status
func NewProblem(status int, detail string) ProblemDetail {
	problemType, ok := problemTypes[status]
	if !ok {
		problemType = "about:blank"
	}
	return ProblemDetail{
		Type:   problemType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// RespondError writes an application/problem+json response
func RespondError(w http.ResponseWriter, status int, detail string) {
	payload, err := json.Marshal(NewProblem(status, detail))
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
