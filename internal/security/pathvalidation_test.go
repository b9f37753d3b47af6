package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"file in dir", filepath.Join(dir, "1350.png"), false},
		{"nested new file", filepath.Join(dir, "a", "b", "1350.png"), false},
		{"dir itself", dir, false},
		{"parent escape", filepath.Join(dir, "..", "1350.png"), true},
		{"deep escape", filepath.Join(dir, "a", "..", "..", "..", "etc", "passwd"), true},
		{"absolute elsewhere", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.path, dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinDirectory(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePathRejectsSymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(dir, "evil")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := ValidatePathWithinDirectory(filepath.Join(link, "1350.png"), dir); err == nil {
		t.Error("expected symlinked directory escape to be rejected")
	}
}

func TestValidatePathMissingDir(t *testing.T) {
	if err := ValidatePathWithinDirectory("x.png", filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for a directory that does not exist")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"1350":         "1350",
		"D1100":        "D1100",
		"../../etc":    "etc",
		"hold 13/50":   "hold_13_50",
		"":             "unknown",
		"...":          "unknown",
		"1439B":        "1439B",
		"a\x00b":       "a_b",
		"émoji-🙂-hold": "moji-_-hold",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	got, err := OutputPath(dir, "../1350", "png")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	if want := filepath.Join(dir, "1350.png"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}
