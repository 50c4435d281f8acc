package parser

import (
	"errors"
	"testing"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

// mockParser is a test implementation of Parser.
type mockParser struct {
	path string
	opts Options
}

func (m *mockParser) Parse() (*ir.Document, error) {
	return ir.NewDocument(), nil
}

func (m *mockParser) Close() error {
	return nil
}

func mockFactory(path string, opts Options) (Parser, error) {
	return &mockParser{path: path, opts: opts}, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r == nil {
		t.Fatal("expected non-nil registry")
	}
	if len(r.Formats()) != 0 {
		t.Errorf("expected no formats, got %v", r.Formats())
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(FormatJPEG, mockFactory); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	formats := r.Formats()
	if len(formats) != 1 || formats[0] != FormatJPEG {
		t.Errorf("expected [jpeg], got %v", formats)
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(FormatJPEG, nil); err == nil {
		t.Error("expected error for nil factory")
	}
	if err := r.Register(FormatUnknown, mockFactory); err == nil {
		t.Error("expected error for unknown format")
	}

	if err := r.Register(FormatJPEG, mockFactory); err != nil {
		t.Fatalf("failed to register first: %v", err)
	}
	if err := r.Register(FormatJPEG, mockFactory); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_Open(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(FormatJPEG, mockFactory); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	p, err := r.Open("photo.jpg", FormatJPEG, Options{RemoveOptionalMetadata: true})
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer p.Close()

	m, ok := p.(*mockParser)
	if !ok {
		t.Fatalf("expected *mockParser, got %T", p)
	}
	if m.path != "photo.jpg" || !m.opts.RemoveOptionalMetadata {
		t.Errorf("factory called with %q, %+v", m.path, m.opts)
	}

	if _, err := r.Open("photo.jpg", FormatUnknown, DefaultOptions()); err == nil {
		t.Error("expected error for unregistered format")
	}
}

func TestRegistry_OpenError(t *testing.T) {
	r := NewRegistry()
	errOpen := errors.New("open failed")
	r.Register(FormatJPEG, func(string, Options) (Parser, error) { return nil, errOpen })

	if _, err := r.Open("photo.jpg", FormatJPEG, DefaultOptions()); !errors.Is(err, errOpen) {
		t.Errorf("expected factory error, got %v", err)
	}
}
