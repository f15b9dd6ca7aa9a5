package model

import (
	"errors"
	"fmt"
	"sort"
)

// CoordinatePhysical is the only coordinate space snapshots use: physical
// pixels relative to the virtual screen origin.
const CoordinatePhysical = "physical-virtual-screen"

// ErrInvalidState is returned when a snapshot or desktop state violates one
// of its structural rules. It indicates a defect in the producer.
var ErrInvalidState = errors.New("invalid desktop state")

// TreeSnapshot is the partitioned result of one element tree walk.
type TreeSnapshot struct {
	Interactive     []ElementRecord `yaml:"interactive"      json:"interactive"`
	Informative     []ElementRecord `yaml:"informative"      json:"informative"`
	Scrollable      []ElementRecord `yaml:"scrollable"       json:"scrollable"`
	VirtualScreen   Rect            `yaml:"virtual_screen"   json:"virtual_screen"`
	CoordinateSpace string          `yaml:"coordinate_space" json:"coordinate_space"`
}

// Len returns the total number of records across all sequences.
func (s TreeSnapshot) Len() int {
	return len(s.Interactive) + len(s.Informative) + len(s.Scrollable)
}

// All returns every record ordered by ID.
func (s TreeSnapshot) All() []ElementRecord {
	all := make([]ElementRecord, 0, s.Len())
	all = append(all, s.Interactive...)
	all = append(all, s.Informative...)
	all = append(all, s.Scrollable...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Find returns the record with the given ID.
func (s TreeSnapshot) Find(id int) (ElementRecord, bool) {
	for _, seq := range [][]ElementRecord{s.Interactive, s.Informative, s.Scrollable} {
		for _, el := range seq {
			if el.ID == id {
				return el, true
			}
		}
	}
	return ElementRecord{}, false
}

// Validate checks that every record carries a control type, sits in the
// sequence matching its single partition flag, and has an ID no other
// record uses.
func (s TreeSnapshot) Validate() error {
	seen := make(map[int]PartitionKind, s.Len())
	check := func(kind PartitionKind, seq []ElementRecord) error {
		prev := -1
		for _, el := range seq {
			if el.ControlType == "" {
				return fmt.Errorf("%w: element %d has no control type", ErrInvalidState, el.ID)
			}
			if el.flagCount() != 1 || el.Partition() != kind {
				return fmt.Errorf("%w: element %d listed as %s but flagged %q", ErrInvalidState, el.ID, kind, el.Partition())
			}
			if other, dup := seen[el.ID]; dup {
				return fmt.Errorf("%w: element id %d appears in both %s and %s", ErrInvalidState, el.ID, other, kind)
			}
			if el.ID <= prev {
				return fmt.Errorf("%w: %s ids out of order at %d", ErrInvalidState, kind, el.ID)
			}
			if el.Bounds.Width < 0 || el.Bounds.Height < 0 {
				return fmt.Errorf("%w: element %d has negative size", ErrInvalidState, el.ID)
			}
			seen[el.ID] = kind
			prev = el.ID
		}
		return nil
	}
	if err := check(PartitionInteractive, s.Interactive); err != nil {
		return err
	}
	if err := check(PartitionInformative, s.Informative); err != nil {
		return err
	}
	return check(PartitionScrollable, s.Scrollable)
}
