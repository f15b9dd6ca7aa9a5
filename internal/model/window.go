package model

// AppStatus is the display state of a top-level window.
type AppStatus string

const (
	AppNormal    AppStatus = "normal"
	AppMinimized AppStatus = "minimized"
	AppMaximized AppStatus = "maximized"
)

// AppRecord represents an open application window.
type AppRecord struct {
	Title     string    `yaml:"title"                json:"title"`
	ClassName string    `yaml:"class_name,omitempty" json:"class_name,omitempty"`
	ProcessID int       `yaml:"pid"                  json:"pid"`
	Handle    uint64    `yaml:"handle"               json:"handle"`
	Bounds    Rect      `yaml:"bounds"               json:"bounds"`
	Status    AppStatus `yaml:"status"               json:"status"`
	IsFocused bool      `yaml:"focused,omitempty"    json:"focused,omitempty"`
}

// DisplayName returns the title, falling back to the class name for
// untitled windows.
func (a AppRecord) DisplayName() string {
	if a.Title != "" {
		return a.Title
	}
	return a.ClassName
}
