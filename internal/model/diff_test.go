package model

import "testing"

func TestElementHash_IgnoresIDAndBounds(t *testing.T) {
	el1 := button(1, "OK")
	el2 := button(7, "OK")
	if ElementHash(el1) != ElementHash(el2) {
		t.Error("hash should not depend on ID or bounds")
	}
}

func TestElementHash_DiffersByControlType(t *testing.T) {
	el1 := ElementRecord{ControlType: ControlButton, Name: "OK", App: "Notepad"}
	el2 := ElementRecord{ControlType: ControlHyperlink, Name: "OK", App: "Notepad"}
	if ElementHash(el1) == ElementHash(el2) {
		t.Error("different control types should produce different hashes")
	}
}

func TestDiffSnapshots_NoChanges(t *testing.T) {
	s := TreeSnapshot{
		Interactive: []ElementRecord{button(1, "Save")},
		Informative: []ElementRecord{label(2, "Ready")},
	}
	diff := DiffSnapshots(s, s)
	if !diff.Empty() {
		t.Errorf("expected no changes, got %+v", diff)
	}
	if diff.UnchangedCount != 2 {
		t.Errorf("unchanged: got %d, want 2", diff.UnchangedCount)
	}
}

func TestDiffSnapshots_IDShift(t *testing.T) {
	prev := TreeSnapshot{Interactive: []ElementRecord{button(1, "Save"), button(2, "Cancel")}}
	inserted := button(1, "Open")
	save := button(1, "Save")
	save.ID = 2
	cancel := button(2, "Cancel")
	cancel.ID = 3
	curr := TreeSnapshot{Interactive: []ElementRecord{inserted, save, cancel}}

	diff := DiffSnapshots(prev, curr)
	if len(diff.Added) != 1 || diff.Added[0].Name != "Open" {
		t.Fatalf("expected Open added, got %+v", diff.Added)
	}
	if len(diff.Removed) != 0 {
		t.Errorf("expected nothing removed, got %+v", diff.Removed)
	}
	if len(diff.Changed) != 0 {
		t.Errorf("shifted IDs should not count as changes, got %+v", diff.Changed)
	}
}

func TestDiffSnapshots_RemovedAndMoved(t *testing.T) {
	prev := TreeSnapshot{Interactive: []ElementRecord{button(1, "Save"), button(2, "Loading...")}}
	moved := button(1, "Save")
	moved.Bounds.X += 40
	curr := TreeSnapshot{Interactive: []ElementRecord{moved}}

	diff := DiffSnapshots(prev, curr)
	if len(diff.Removed) != 1 || diff.Removed[0].Name != "Loading..." {
		t.Fatalf("expected Loading... removed, got %+v", diff.Removed)
	}
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 change, got %d", len(diff.Changed))
	}
	if _, ok := diff.Changed[0].Changes["bounds"]; !ok {
		t.Errorf("expected bounds change, got %v", diff.Changed[0].Changes)
	}
}

func TestDiffSnapshots_DuplicateNames(t *testing.T) {
	prev := TreeSnapshot{Interactive: []ElementRecord{button(1, "OK"), button(2, "OK")}}
	curr := TreeSnapshot{Interactive: []ElementRecord{button(1, "OK")}}
	diff := DiffSnapshots(prev, curr)
	if len(diff.Removed) != 1 || diff.Removed[0].ID != 2 {
		t.Errorf("expected second OK removed, got %+v", diff.Removed)
	}
}

func TestDiffSnapshots_PartitionChange(t *testing.T) {
	enabled := button(1, "Save")
	disabled := enabled
	disabled.Interactable = false
	disabled.Informative = true
	prev := TreeSnapshot{Interactive: []ElementRecord{enabled}}
	curr := TreeSnapshot{Informative: []ElementRecord{disabled}}

	diff := DiffSnapshots(prev, curr)
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 change, got %+v", diff)
	}
	got := diff.Changed[0].Changes["partition"]
	if got != [2]string{"interactive", "informative"} {
		t.Errorf("partition change: got %v", got)
	}
}
