package monitor

import (
	"bytes"
	"fmt"
	"net/http"

	"tailscale.com/tsweb"

	"github.com/banshee-data/holdmap/internal/httputil"
	"github.com/banshee-data/holdmap/internal/wall"
)

// AttachDebugRoutes mounts the calibration chart and the layout page on the
// tsweb debug index of mux.
func AttachDebugRoutes(mux *http.ServeMux, s *wall.Session) {
	debug := tsweb.Debugger(mux)
	debug.HandleFunc("calibration.png", "Column calibration curves", calibrationHandler(s))
	debug.HandleFunc("layout", "Hold layout and per-panel counts", layoutHandler(s))
}

func calibrationHandler(s *wall.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := WriteCalibration(&buf, s.Layout(), "png"); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to render calibration: %v", err))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}
}

func layoutHandler(s *wall.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := WriteLayoutPage(&buf, s); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}
