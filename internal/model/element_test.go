package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestElementRecord_Partition(t *testing.T) {
	tests := []struct {
		name string
		el   ElementRecord
		want PartitionKind
	}{
		{"interactive", button(1, "Save"), PartitionInteractive},
		{"informative", label(2, "Ready"), PartitionInformative},
		{"scrollable", pane(3), PartitionScrollable},
		{"none", ElementRecord{ID: 4, ControlType: ControlPane}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Partition(); got != tt.want {
				t.Errorf("Partition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementRecord_JSONKeys(t *testing.T) {
	data, err := json.Marshal(button(3, "Save"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{`"id":3`, `"name":"Save"`, `"control_type":"Button"`, `"interactable":true`, `"center":`} {
		if !strings.Contains(s, key) {
			t.Errorf("missing %s in %s", key, s)
		}
	}
	for _, key := range []string{`"informative"`, `"scrollable"`, `"scroll_axes"`} {
		if strings.Contains(s, key) {
			t.Errorf("%s should be omitted when false, got %s", key, s)
		}
	}
}

func TestAppRecord_DisplayName(t *testing.T) {
	if got := (AppRecord{Title: "Untitled - Notepad", ClassName: "Notepad"}).DisplayName(); got != "Untitled - Notepad" {
		t.Errorf("got %q", got)
	}
	if got := (AppRecord{ClassName: "CabinetWClass"}).DisplayName(); got != "CabinetWClass" {
		t.Errorf("got %q", got)
	}
}
