package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const jsonContentType = "application/json; charset=utf-8"

// WriteJSON encodes data and writes it with the given status. The pages of
// the app are HTML; this is used by the few machine-readable endpoints such
// as /version, whose answers must not be cached by browsers or proxies.
//
// When data cannot be encoded nothing but a 500 is written and the encode
// error is returned.
//
//	utils.WriteJSON(w, info.Response(), http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", jsonContentType)
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
