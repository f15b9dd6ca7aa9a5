package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_UsesRegisteredFunc(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	want := &Provider{}
	NewProviderFunc = func() (*Provider, error) { return want, nil }
	got, err := NewProvider()
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if got != want {
		t.Errorf("NewProvider returned %p, want the registered provider %p", got, want)
	}
}

func TestNewProvider_PassesRegistrationError(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	dpi := errors.New("dpi awareness refused")
	NewProviderFunc = func() (*Provider, error) { return nil, dpi }
	if _, err := NewProvider(); !errors.Is(err, dpi) {
		t.Errorf("got %v, want %v", err, dpi)
	}
}

func TestNewProvider_NothingRegistered(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	NewProviderFunc = nil
	p, err := NewProvider()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("got %v, want ErrUnsupported", err)
	}
	if p != nil {
		t.Errorf("expected no provider, got %+v", p)
	}
}
