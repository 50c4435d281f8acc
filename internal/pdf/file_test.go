package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

func TestWriteFile(t *testing.T) {
	out, err := Build(testDocument(ir.ColorSpaceRGB), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	if err := WriteFile(path, out); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(got.Image.Data, fakeJPEG) {
		t.Error("image data in the file differs from the input")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the output", len(entries))
	}
}

func TestWriteFile_Overwrite(t *testing.T) {
	out, err := Build(testDocument(ir.ColorSpaceGray), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, out); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if !bytes.HasPrefix(got, []byte("%PDF-")) {
		t.Error("existing file was not replaced")
	}
}

func TestWriteFile_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	// 이미지가 없으면 직렬화가 실패한다
	d := &Document{Version: DefaultVersion, Width: 1, Height: 1}
	if err := WriteFile(path, d); err == nil {
		t.Fatal("expected error")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after failure, want 0", len(entries))
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	out, err := Build(testDocument(ir.ColorSpaceRGB), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "out.pdf")
	if err := WriteFile(path, out); err == nil {
		t.Error("expected error for a missing directory")
	}
}
