package dtd

import (
	"fmt"
	"strconv"
)

// UnexpectedByteError reports a byte that does not fit the declaration
// grammar
type UnexpectedByteError struct {
	// Offset is the absolute offset of Byte in the input
	Offset int64
	Byte   byte
}

func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected byte %s at offset %d", strconv.QuoteRune(rune(e.Byte)), e.Offset)
}

// IncompleteError reports that the input ended inside of a declaration
type IncompleteError struct {
	// Offset is the absolute offset of the start of the declaration
	Offset int64
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("input ends inside of the declaration at offset %d", e.Offset)
}
