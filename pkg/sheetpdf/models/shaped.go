package models

// Direction tags how a shaped string was produced.
type Direction int

const (
	// LeftToRight text passed through unchanged.
	LeftToRight Direction = iota
	// RightToLeftShaped text was reshaped and reordered into visual order.
	RightToLeftShaped
)

// String returns the direction name.
func (d Direction) String() string {
	if d == RightToLeftShaped {
		return "rtl-shaped"
	}
	return "ltr"
}

// ShapedText is a display-ready string in visual (left-to-right storage) order.
type ShapedText struct {
	// Text is the display string. Lines are separated by "\n".
	Text string `json:"text"`
	// Direction records whether reshaping and reordering were applied.
	Direction Direction `json:"direction"`
	// BaseRTL is true when the first non-blank line resolved to a
	// right-to-left base direction.
	BaseRTL bool `json:"base_rtl,omitempty"`
	// LineRTL holds the base direction of each line of Text.
	LineRTL []bool `json:"line_rtl,omitempty"`
}

// LineIsRTL reports the base direction of line i, falling back to BaseRTL
// for lines without a recorded direction.
func (t ShapedText) LineIsRTL(i int) bool {
	if i >= 0 && i < len(t.LineRTL) {
		return t.LineRTL[i]
	}
	return t.BaseRTL
}

// ShapedGrid is the shaped counterpart of a Grid, header row included.
type ShapedGrid [][]ShapedText

// Columns returns the header width.
func (g ShapedGrid) Columns() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}
