// Package httputil holds the JSON response helpers shared by the HTTP
// handlers and the client abstraction used by the remote commands.
package httputil

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"

	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
)

// WriteJSONError writes {"error": msg} with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		monitoring.Logf("failed to encode json response: %v", err)
	}
}

// WriteJSONOK writes a 200 JSON response.
func WriteJSONOK(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteError maps err onto a status. Unknown holds, rows and columns are 404;
// everything else, configuration faults included, is 500.
func WriteError(w http.ResponseWriter, err error) {
	var lookupErr *layout.LookupError
	switch {
	case errors.As(err, &lookupErr):
		NotFound(w, err.Error())
	default:
		InternalServerError(w, err.Error())
	}
}

// WritePNG encodes img as a PNG response.
func WritePNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		monitoring.Logf("failed to encode png response: %v", err)
	}
}

func MethodNotAllowed(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusBadRequest, msg)
}

func InternalServerError(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusInternalServerError, msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusNotFound, msg)
}
