package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	img.SetGray(0, 0, color.Gray{Y: 0})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"long help", []string{"--help"}},
		{"short help", []string{"-h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 0 {
				t.Errorf("exit code: got %d, want 0 (stderr: %s)", code, stderr.String())
			}
			if !strings.Contains(stdout.String(), "Usage:") {
				t.Errorf("usage not printed: %q", stdout.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "image2xth dev") {
		t.Errorf("version output: %q", stdout.String())
	}
}

func TestRun_FatalInputErrors(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	writeTestPNG(t, img)

	tests := []struct {
		name string
		args []string
	}{
		{"missing path", []string{filepath.Join(dir, "missing.png")}},
		{"non-numeric gamma", []string{img, "--gamma", "bright"}},
		{"zero gamma", []string{img, "--gamma", "0"}},
		{"negative jobs", []string{dir, "--jobs", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 1 {
				t.Errorf("exit code: got %d, want 1", code)
			}
			if stderr.Len() == 0 {
				t.Error("expected an error message on stderr")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "a.xth")); !os.IsNotExist(err) {
		t.Error("no frame should be written when arguments are invalid")
	}
}

func TestRun_SingleFile(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	writeTestPNG(t, img)

	var stdout, stderr bytes.Buffer
	code := run([]string{img, "--mode", "letterbox", "--pad", "black", "--dither", "floyd", "--preview"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "✓ photo.xth") {
		t.Errorf("missing success line: %q", stdout.String())
	}

	info, err := os.Stat(filepath.Join(dir, "photo.xth"))
	if err != nil {
		t.Fatalf("frame not written: %v", err)
	}
	if info.Size() != 22+96000 {
		t.Errorf("frame size: got %d, want %d", info.Size(), 22+96000)
	}
	if _, err := os.Stat(filepath.Join(dir, "photo.preview.png")); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestRun_UnknownNamesFallBack(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	writeTestPNG(t, img)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--mode", "zoom", "--dither", "bayer", "--pad", "grey", img}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "photo.xth")); err != nil {
		t.Errorf("frame not written: %v", err)
	}
}

func TestRun_DirectoryContinuesOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"))
	if err := os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("broken"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	writeTestPNG(t, filepath.Join(dir, "c.PNG"))

	var stdout, stderr bytes.Buffer
	if code := run([]string{dir, "--jobs", "2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}

	out := stdout.String()
	if !strings.Contains(out, "✗ b.jpg") {
		t.Errorf("missing failure line: %q", out)
	}
	if !strings.Contains(out, "2 converted, 1 failed") {
		t.Errorf("missing summary: %q", out)
	}
	if strings.Index(out, "a.xth") > strings.Index(out, "c.xth") {
		t.Errorf("results not in lexical order: %q", out)
	}
}

func TestRun_InspectFrame(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	writeTestPNG(t, img)

	var stdout, stderr bytes.Buffer
	if code := run([]string{img}, &stdout, &stderr); code != 0 {
		t.Fatalf("convert exit code: got %d", code)
	}

	frame := filepath.Join(dir, "photo.xth")
	stdout.Reset()
	if code := run([]string{frame}, &stdout, &stderr); code != 0 {
		t.Fatalf("inspect exit code: got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "480x800, payload 96000 bytes") {
		t.Errorf("inspect output: %q", stdout.String())
	}

	data, err := os.ReadFile(frame)
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(frame, data, 0o644); err != nil {
		t.Fatalf("failed to write frame: %v", err)
	}
	if code := run([]string{frame}, &stdout, &stderr); code != 1 {
		t.Errorf("tampered frame exit code: got %d, want 1", code)
	}
}
