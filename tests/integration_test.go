package tests

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "jpeg2pdf_test.exe"
	}
	return "jpeg2pdf_test"
}

// buildTestBinary builds the test binary and returns a cleanup function
func buildTestBinary(t *testing.T) (string, func()) {
	t.Helper()
	binName := binaryName()
	buildCmd := exec.Command("go", "build", "-o", binName, "../cmd/jpeg2pdf")
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}
	return binName, func() { os.Remove(binName) }
}

// runBinary runs the binary with an isolated home directory so no user
// configuration is picked up.
func runBinary(t *testing.T, binPath, home string, args ...string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command("./"+binPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"USERPROFILE="+home,
		"JPEG2PDF_REMOVE_OPTIONAL=",
		"JPEG2PDF_PDF_VERSION=",
	)
	return cmd.CombinedOutput()
}

// segment builds a marker segment with a length field.
func segment(marker byte, payload []byte) []byte {
	n := len(payload) + 2
	return append([]byte{0xFF, marker, byte(n >> 8), byte(n)}, payload...)
}

// jfif returns an APP0 JFIF segment with the given density.
func jfif(unit byte, x, y uint16) []byte {
	return segment(0xE0, []byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x02, unit,
		byte(x >> 8), byte(x), byte(y >> 8), byte(y), 0x00, 0x00})
}

// adobe returns an APP14 Adobe segment with the given transform.
func adobe(transform byte) []byte {
	return segment(0xEE, []byte{'A', 'd', 'o', 'b', 'e', 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, transform})
}

// encodeJPEG encodes a w x h test pattern with the standard library and
// inserts extra segments right after SOI.
func encodeJPEG(t *testing.T, w, h int, gray bool, extra ...[]byte) []byte {
	t.Helper()

	var img image.Image
	if gray {
		g := image.NewGray(image.Rect(0, 0, w, h))
		for x := 0; x < w; x++ {
			g.SetGray(x, x%h, color.Gray{Y: 220})
		}
		img = g
	} else {
		c := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
			}
		}
		img = c
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	encoded := buf.Bytes()

	out := []byte{0xFF, 0xD8}
	for _, seg := range extra {
		out = append(out, seg...)
	}
	return append(out, encoded[2:]...)
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestConvertCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeFile(t, filepath.Join(dir, "sample.jpg"),
		encodeJPEG(t, 64, 32, false, jfif(1, 72, 72), segment(0xFE, []byte("sample"))))
	noDensity := writeFile(t, filepath.Join(dir, "nodensity.jpg"),
		encodeJPEG(t, 64, 32, false, jfif(0, 1, 1)))
	noJFIF := writeFile(t, filepath.Join(dir, "nojfif.jpg"), encodeJPEG(t, 64, 32, false))
	textFile := writeFile(t, filepath.Join(dir, "test.txt"), []byte("not an image"))

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "basic convert",
			args:       []string{"convert", sampleFile, filepath.Join(dir, "basic.pdf")},
			wantOutput: []string{"변환 완료"},
		},
		{
			name:       "shorthand",
			args:       []string{sampleFile, filepath.Join(dir, "short.pdf")},
			wantOutput: []string{"변환 완료"},
		},
		{
			name:       "convert with verbose",
			args:       []string{"convert", sampleFile, filepath.Join(dir, "verbose.pdf"), "-v"},
			wantOutput: []string{"파일 형식: jpeg", "페이지 크기: 64 x 32 pt"},
		},
		{
			name:    "convert non-existent file",
			args:    []string{"convert", filepath.Join(dir, "nonexistent.jpg"), filepath.Join(dir, "missing.pdf")},
			wantErr: true,
		},
		{
			name:    "convert unsupported format",
			args:    []string{"convert", textFile, filepath.Join(dir, "text.pdf")},
			wantErr: true,
		},
		{
			name:       "convert without density",
			args:       []string{"convert", noDensity, filepath.Join(dir, "nodensity.pdf")},
			wantErr:    true,
			wantOutput: []string{"unsupported image density"},
		},
		{
			name:    "convert without JFIF",
			args:    []string{"convert", noJFIF, filepath.Join(dir, "nojfif.pdf")},
			wantErr: true,
		},
		{
			name:    "missing output argument",
			args:    []string{"convert", sampleFile},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := runBinary(t, binPath, dir, tc.args...)

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v\noutput: %s", err, output)
				}
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(string(output), want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	sampleFile := writeFile(t, filepath.Join(dir, "sample.jpg"),
		encodeJPEG(t, 64, 32, false, jfif(2, 28, 28), segment(0xE1, []byte("Exif\x00\x00"))))

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "inspect as text",
			args:       []string{"inspect", sampleFile},
			wantOutput: []string{"APP0", "APP1", "SOF0", "변환 가능: 예"},
		},
		{
			name:       "inspect as json",
			args:       []string{"inspect", sampleFile, "--format", "json"},
			wantOutput: []string{`"marker": "APP1"`, `"color_space": "RGB"`},
		},
		{
			name:       "inspect as yaml",
			args:       []string{"inspect", sampleFile, "-f", "yaml", "-r"},
			wantOutput: []string{"unit: dpcm", "kept: false"},
		},
		{
			name:    "inspect non-existent file",
			args:    []string{"inspect", filepath.Join(dir, "nonexistent.jpg")},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := runBinary(t, binPath, dir, tc.args...)

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v\noutput: %s", err, output)
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(string(output), want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	output, err := runBinary(t, binPath, t.TempDir(), "version")
	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(string(output), "jpeg2pdf") {
		t.Errorf("output should contain 'jpeg2pdf', got: %s", output)
	}
}

func TestConfigCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	home := t.TempDir()

	t.Run("config show", func(t *testing.T) {
		output, err := runBinary(t, binPath, home, "config", "show")
		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), "remove_optional_metadata") {
			t.Errorf("output should contain 'remove_optional_metadata', got: %s", output)
		}
	})

	t.Run("config path", func(t *testing.T) {
		output, err := runBinary(t, binPath, home, "config", "path")
		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), filepath.Join(".jpeg2pdf", "config.yaml")) {
			t.Errorf("output should contain the config path, got: %s", output)
		}
	})

	t.Run("config init and set", func(t *testing.T) {
		if output, err := runBinary(t, binPath, home, "config", "init"); err != nil {
			t.Fatalf("unexpected error: %v\noutput: %s", err, output)
		}
		if output, err := runBinary(t, binPath, home, "config", "set", "pdf.version", "1.7"); err != nil {
			t.Fatalf("unexpected error: %v\noutput: %s", err, output)
		}

		input := writeFile(t, filepath.Join(home, "in.jpg"), encodeJPEG(t, 8, 8, true, jfif(1, 72, 72)))
		output := filepath.Join(home, "out.pdf")
		if out, err := runBinary(t, binPath, home, input, output); err != nil {
			t.Fatalf("unexpected error: %v\noutput: %s", err, out)
		}
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("output not written: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-1.7")) {
			t.Errorf("configured version not applied: %q", data[:8])
		}
	})
}

func TestHelpCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	output, err := runBinary(t, binPath, t.TempDir(), "--help")
	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	expectedStrings := []string{"jpeg2pdf", "convert", "inspect", "config", "version"}
	for _, s := range expectedStrings {
		if !strings.Contains(string(output), s) {
			t.Errorf("output should contain %q, got: %s", s, output)
		}
	}
}
