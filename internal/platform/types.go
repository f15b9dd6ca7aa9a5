package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}

// ParseMouseButton converts a string value to MouseButton. Empty means left.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// ScrollAxis selects the wheel used for scrolling.
type ScrollAxis string

const (
	ScrollAxisVertical   ScrollAxis = "vertical"
	ScrollAxisHorizontal ScrollAxis = "horizontal"
)

// ScrollDirection is the direction of a scroll along its axis.
type ScrollDirection string

const (
	ScrollUp    ScrollDirection = "up"
	ScrollDown  ScrollDirection = "down"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// ParseScroll validates an axis and direction pair. Empty axis means vertical.
func ParseScroll(axis, direction string) (ScrollAxis, ScrollDirection, error) {
	a := ScrollAxis(strings.ToLower(axis))
	if a == "" {
		a = ScrollAxisVertical
	}
	d := ScrollDirection(strings.ToLower(direction))
	switch a {
	case ScrollAxisVertical:
		if d != ScrollUp && d != ScrollDown {
			return a, d, fmt.Errorf("invalid vertical scroll direction: %q (expected up or down)", direction)
		}
	case ScrollAxisHorizontal:
		if d != ScrollLeft && d != ScrollRight {
			return a, d, fmt.Errorf("invalid horizontal scroll direction: %q (expected left or right)", direction)
		}
	default:
		return a, d, fmt.Errorf("unknown scroll type: %q (expected vertical or horizontal)", axis)
	}
	return a, d, nil
}

// ParseKeyCombo splits a combo such as "ctrl+shift+s" into its keys. A
// lone "+" or a trailing "++" names the plus key itself.
func ParseKeyCombo(s string) ([]string, error) {
	combo := strings.TrimSpace(s)
	if combo == "+" {
		return []string{"+"}, nil
	}
	var plus bool
	if strings.HasSuffix(combo, "++") {
		combo, plus = strings.TrimSpace(strings.TrimSuffix(combo, "++")), true
	}
	var keys []string
	for _, k := range strings.Split(combo, "+") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return nil, fmt.Errorf("invalid key combo %q: empty key", s)
		}
		keys = append(keys, k)
	}
	if plus {
		keys = append(keys, "+")
	}
	return keys, nil
}
