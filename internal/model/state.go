package model

import (
	"fmt"
	"image"
	"time"
)

// Screenshot is a capture of the whole virtual screen taken alongside a
// tree snapshot.
type Screenshot struct {
	Image  image.Image `yaml:"-"      json:"-"`
	Width  int         `yaml:"width"  json:"width"`
	Height int         `yaml:"height" json:"height"`
}

// NewScreenshot wraps a captured image.
func NewScreenshot(img image.Image) *Screenshot {
	b := img.Bounds()
	return &Screenshot{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// DesktopState is the complete answer to a state query. It is built fresh
// for every query and never modified after construction.
type DesktopState struct {
	ID         string       `yaml:"id"          json:"id"`
	CapturedAt time.Time    `yaml:"captured_at" json:"captured_at"`
	Snapshot   TreeSnapshot `yaml:"snapshot"    json:"snapshot"`
	Apps       []AppRecord  `yaml:"apps"        json:"apps"`
	ActiveApp  *AppRecord   `yaml:"active_app"  json:"active_app"` // nil when focus could not be resolved
	Screenshot *Screenshot  `yaml:"screenshot,omitempty" json:"screenshot,omitempty"`
}

// Validate checks the snapshot plus the focus rules: at most one app is
// focused, and ActiveApp, when set, is that app.
func (d *DesktopState) Validate() error {
	if err := d.Snapshot.Validate(); err != nil {
		return err
	}
	var focused *AppRecord
	for i := range d.Apps {
		if !d.Apps[i].IsFocused {
			continue
		}
		if focused != nil {
			return fmt.Errorf("%w: both %q and %q are focused", ErrInvalidState, focused.Title, d.Apps[i].Title)
		}
		focused = &d.Apps[i]
	}
	switch {
	case d.ActiveApp == nil:
		if focused != nil {
			return fmt.Errorf("%w: %q is focused but no active app is set", ErrInvalidState, focused.Title)
		}
	case focused == nil:
		return fmt.Errorf("%w: active app %q is not among the focused apps", ErrInvalidState, d.ActiveApp.Title)
	case focused.Handle != d.ActiveApp.Handle:
		return fmt.Errorf("%w: active app %q does not match focused app %q", ErrInvalidState, d.ActiveApp.Title, focused.Title)
	}
	return nil
}
