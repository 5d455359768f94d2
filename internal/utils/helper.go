package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToUint parses a base-10 unsigned id, tolerating surrounding whitespace.
func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	return uint(n), err
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}
