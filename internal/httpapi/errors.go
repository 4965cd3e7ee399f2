package httpapi

import (
	"encoding/json"
	"net/http"
)

// apiError is the uniform JSON error envelope for every REST endpoint.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, apiError{Code: errCode, Message: msg})
}

// readJSON decodes the request body into v. Bodies are small fixed shapes,
// so anything over a megabyte is garbage.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(body).Decode(v)
}
