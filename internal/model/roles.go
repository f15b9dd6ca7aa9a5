package model

import (
	"fmt"
	"strings"
)

// ControlType is the semantic kind of a UI element.
type ControlType string

const (
	ControlButton      ControlType = "Button"
	ControlCheckBox    ControlType = "CheckBox"
	ControlComboBox    ControlType = "ComboBox"
	ControlCustom      ControlType = "Custom"
	ControlDataItem    ControlType = "DataItem"
	ControlDocument    ControlType = "Document"
	ControlEdit        ControlType = "Edit"
	ControlGroup       ControlType = "Group"
	ControlHeader      ControlType = "Header"
	ControlHeaderItem  ControlType = "HeaderItem"
	ControlHyperlink   ControlType = "Hyperlink"
	ControlImage       ControlType = "Image"
	ControlList        ControlType = "List"
	ControlListItem    ControlType = "ListItem"
	ControlMenu        ControlType = "Menu"
	ControlMenuBar     ControlType = "MenuBar"
	ControlMenuItem    ControlType = "MenuItem"
	ControlPane        ControlType = "Pane"
	ControlProgressBar ControlType = "ProgressBar"
	ControlRadioButton ControlType = "RadioButton"
	ControlScrollBar   ControlType = "ScrollBar"
	ControlSlider      ControlType = "Slider"
	ControlSpinner     ControlType = "Spinner"
	ControlSplitButton ControlType = "SplitButton"
	ControlStatusBar   ControlType = "StatusBar"
	ControlTab         ControlType = "Tab"
	ControlTabItem     ControlType = "TabItem"
	ControlTable       ControlType = "Table"
	ControlText        ControlType = "Text"
	ControlTitleBar    ControlType = "TitleBar"
	ControlToolBar     ControlType = "ToolBar"
	ControlToolTip     ControlType = "ToolTip"
	ControlTree        ControlType = "Tree"
	ControlTreeItem    ControlType = "TreeItem"
	ControlWindow      ControlType = "Window"
)

// ControlTypes lists every known control type in a stable order.
var ControlTypes = []ControlType{
	ControlButton, ControlCheckBox, ControlComboBox, ControlCustom, ControlDataItem,
	ControlDocument, ControlEdit, ControlGroup, ControlHeader, ControlHeaderItem,
	ControlHyperlink, ControlImage, ControlList, ControlListItem, ControlMenu,
	ControlMenuBar, ControlMenuItem, ControlPane, ControlProgressBar, ControlRadioButton,
	ControlScrollBar, ControlSlider, ControlSpinner, ControlSplitButton, ControlStatusBar,
	ControlTab, ControlTabItem, ControlTable, ControlText, ControlTitleBar,
	ControlToolBar, ControlToolTip, ControlTree, ControlTreeItem, ControlWindow,
}

// ParseControlType converts a control type name, case-insensitively.
func ParseControlType(s string) (ControlType, error) {
	name := strings.TrimSpace(s)
	for _, ct := range ControlTypes {
		if strings.EqualFold(string(ct), name) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown control type: %q", s)
}

// ClassMap maps Win32 window class names to control types. Keys are
// lowercase; see ControlTypeForClass.
var ClassMap = map[string]ControlType{
	"button":            ControlButton,
	"edit":              ControlEdit,
	"richedit":          ControlEdit,
	"richedit20a":       ControlEdit,
	"richedit20w":       ControlEdit,
	"richedit50w":       ControlEdit,
	"sysipaddress32":    ControlEdit,
	"combobox":          ControlComboBox,
	"comboboxex32":      ControlComboBox,
	"sysdatetimepick32": ControlComboBox,
	"combolbox":         ControlList,
	"listbox":           ControlList,
	"syslistview32":     ControlList,
	"systreeview32":     ControlTree,
	"sysheader32":       ControlHeader,
	"static":            ControlText,
	"syslink":           ControlHyperlink,
	"msctls_progress32": ControlProgressBar,
	"msctls_trackbar32": ControlSlider,
	"msctls_updown32":   ControlSpinner,
	"toolbarwindow32":   ControlToolBar,
	"rebarwindow32":     ControlToolBar,
	"systabcontrol32":   ControlTab,
	"scrollbar":         ControlScrollBar,
	"tooltips_class32":  ControlToolTip,
	"sysmonthcal32":     ControlTable,
	"directuihwnd":      ControlPane,
	"#32768":            ControlMenu,
	"#32770":            ControlWindow,

	"msctls_statusbar32":          ControlStatusBar,
	"internet explorer_server":    ControlDocument,
	"chrome_renderwidgethosthwnd": ControlDocument,
}

// ControlTypeForClass converts a Win32 class name to a control type.
// Unknown classes are reported as Pane.
func ControlTypeForClass(className string) ControlType {
	if ct, ok := ClassMap[strings.ToLower(className)]; ok {
		return ct
	}
	return ControlPane
}
