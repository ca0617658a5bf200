// Package response writes the {"success": bool, ...} JSON envelopes every
// endpoint uses.
package response

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// OK merges data into a success envelope.
func OK(w http.ResponseWriter, data map[string]interface{}) {
	payload := map[string]interface{}{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	JSON(w, http.StatusOK, payload)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}
