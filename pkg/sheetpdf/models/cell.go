// Package models defines data structures for workbook conversion.
package models

import (
	"math"
	"time"
)

// CellKind classifies the scalar stored in a cell.
type CellKind int

const (
	// CellEmpty is a missing or blank cell.
	CellEmpty CellKind = iota
	// CellString is a text cell.
	CellString
	// CellNumber is a numeric cell.
	CellNumber
	// CellBool is a boolean cell.
	CellBool
	// CellDate is a date or date-time cell.
	CellDate
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a single typed scalar value of a sheet grid.
type Cell struct {
	// Kind selects which of the value fields is meaningful.
	Kind CellKind `json:"kind"`
	// Text is the value of a string cell.
	Text string `json:"text,omitempty"`
	// Number is the value of a numeric cell.
	Number float64 `json:"number,omitempty"`
	// Bool is the value of a boolean cell.
	Bool bool `json:"bool,omitempty"`
	// Time is the value of a date cell.
	Time time.Time `json:"time,omitempty"`
}

// StringCell returns a text cell. Blank text yields an empty cell.
func StringCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// BoolCell returns a boolean cell.
func BoolCell(v bool) Cell {
	return Cell{Kind: CellBool, Bool: v}
}

// DateCell returns a date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// IsEmpty reports whether the cell holds no value. NaN numbers count as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellString:
		return c.Text == ""
	case CellNumber:
		return math.IsNaN(c.Number)
	default:
		return false
	}
}
