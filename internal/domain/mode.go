package domain

import "strings"

// OpenMode is a bit set of access modes
type OpenMode uint8

const (
	ModeRead OpenMode = 1 << iota
	ModeWrite
	ModeAppend
)

// ModeReadWrite asks for both read and write support
const ModeReadWrite = ModeRead | ModeWrite

// Has reports whether every bit of o is set in m
func (m OpenMode) Has(o OpenMode) bool {
	return m&o == o
}

func (m OpenMode) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	if m&ModeRead != 0 {
		parts = append(parts, "read")
	}
	if m&ModeWrite != 0 {
		parts = append(parts, "write")
	}
	if m&ModeAppend != 0 {
		parts = append(parts, "append")
	}
	return strings.Join(parts, "|")
}
