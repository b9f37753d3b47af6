package testutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/banshee-data/holdmap/internal/highlight"
)

// recordingT captures failures so the failure paths can be asserted.
type recordingT struct {
	testing.TB
	failed bool
	fatal  bool
}

func (r *recordingT) Helper()                 {}
func (r *recordingT) Errorf(string, ...any) { r.failed = true }
func (r *recordingT) Fatalf(string, ...any) { r.failed, r.fatal = true, true }

func TestAssertStatusCode(t *testing.T) {
	t.Parallel()

	ok := &recordingT{TB: t}
	AssertStatusCode(ok, http.StatusOK, http.StatusOK)
	if ok.failed {
		t.Error("matching codes reported a failure")
	}

	bad := &recordingT{TB: t}
	AssertStatusCode(bad, http.StatusOK, http.StatusBadRequest)
	if !bad.failed || bad.fatal {
		t.Error("mismatch should be a non-fatal failure")
	}
}

func TestAssertNoError(t *testing.T) {
	t.Parallel()

	r := &recordingT{TB: t}
	AssertNoError(r, nil)
	if r.failed {
		t.Error("nil error reported a failure")
	}
	AssertNoError(r, errors.New("boom"))
	if !r.fatal {
		t.Error("non-nil error should be fatal")
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	rec := NewTestRecorder()
	rec.WriteString(`{"id":"1350"}`)
	got := DecodeJSON[map[string]string](t, rec)
	if got["id"] != "1350" {
		t.Errorf("id = %q, want 1350", got["id"])
	}
}

func TestNewTestRequest(t *testing.T) {
	t.Parallel()

	req := NewTestRequest(http.MethodPost, "/api/show?hold=1350")
	if req.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if req.URL.Query().Get("hold") != "1350" {
		t.Errorf("hold = %q", req.URL.Query().Get("hold"))
	}
}

func TestNewSampleSession(t *testing.T) {
	t.Parallel()

	s := NewSampleSession(t, highlight.Crosshair)
	if _, err := s.Lookup("1350"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
}
