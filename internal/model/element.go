package model

// ScrollAxes names the directions in which an element can scroll.
type ScrollAxes string

const (
	ScrollNone       ScrollAxes = ""
	ScrollVertical   ScrollAxes = "vertical"
	ScrollHorizontal ScrollAxes = "horizontal"
	ScrollBoth       ScrollAxes = "both"
)

// CombineScrollAxes merges independent vertical and horizontal capabilities.
func CombineScrollAxes(vertical, horizontal bool) ScrollAxes {
	switch {
	case vertical && horizontal:
		return ScrollBoth
	case vertical:
		return ScrollVertical
	case horizontal:
		return ScrollHorizontal
	default:
		return ScrollNone
	}
}

// PartitionKind identifies which snapshot sequence an element belongs to.
type PartitionKind string

const (
	PartitionInteractive PartitionKind = "interactive"
	PartitionInformative PartitionKind = "informative"
	PartitionScrollable  PartitionKind = "scrollable"
)

// ElementRecord is one UI element kept in a tree snapshot.
type ElementRecord struct {
	ID           int         `yaml:"id"                     json:"id"`           // Pre-order index, unique within a snapshot
	Name         string      `yaml:"name"                   json:"name"`         // Accessible name, may be empty
	ControlType  ControlType `yaml:"control_type"           json:"control_type"` // Semantic kind
	App          string      `yaml:"app"                    json:"app"`          // Owning top-level window
	Bounds       Rect        `yaml:"bounds"                 json:"bounds"`       // Clipped to the virtual screen
	Center       Point       `yaml:"center"                 json:"center"`       // Click target
	Interactable bool        `yaml:"interactable,omitempty" json:"interactable,omitempty"`
	Informative  bool        `yaml:"informative,omitempty"  json:"informative,omitempty"`
	Scrollable   bool        `yaml:"scrollable,omitempty"   json:"scrollable,omitempty"`
	ScrollAxes   ScrollAxes  `yaml:"scroll_axes,omitempty"  json:"scroll_axes,omitempty"`
}

// Partition reports which sequence the record was assigned to, or "" if
// no partition flag is set.
func (e ElementRecord) Partition() PartitionKind {
	switch {
	case e.Interactable:
		return PartitionInteractive
	case e.Scrollable:
		return PartitionScrollable
	case e.Informative:
		return PartitionInformative
	default:
		return ""
	}
}

func (e ElementRecord) flagCount() int {
	n := 0
	for _, f := range []bool{e.Interactable, e.Informative, e.Scrollable} {
		if f {
			n++
		}
	}
	return n
}
