package server

import (
	"encoding/json"
	"net/http"

	"github.com/andareed/siftly-covid/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("server: encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]any{"error": message, "status": status})
}
