package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// APIError is the JSON body of every non-browser error response:
// {"error": Code, "message": Message}.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e APIError) Error() string { return e.Code + ": " + e.Message }

// WriteJSON encodes v before touching w so an encoding failure can still
// become a clean 500.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// WriteError writes e with its Status, defaulting to 500.
func WriteError(w http.ResponseWriter, e APIError) {
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, e)
}
