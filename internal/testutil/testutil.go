// Package testutil provides shared test helpers and fixtures.
package testutil

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banshee-data/holdmap/internal/highlight"
	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/wall"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// NewTestRequest creates a test HTTP request with no body.
func NewTestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// DecodeJSON unmarshals the recorded body into a T.
func DecodeJSON[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// DecodePNG decodes body as a PNG image.
func DecodePNG(t testing.TB, body []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

// NewSampleSession builds a wall session over the default layout and the
// bundled sample holds, drawn on the blank wall.
func NewSampleSession(t testing.TB, p highlight.Presentation) *wall.Session {
	t.Helper()
	l := layout.Default()
	d, err := holds.Sample(l)
	AssertNoError(t, err)
	s, err := wall.NewSession(wall.Options{Layout: l, Dataset: d, Style: highlight.DefaultStyle(p)})
	AssertNoError(t, err)
	return s
}
