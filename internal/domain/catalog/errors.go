package catalog

import "fmt"

// MalformedInputError rejects a whole catalog. No blueprints are returned
// alongside it.
type MalformedInputError struct {
	Line   int // 1-based line where the offending blueprint starts, 0 if not line-oriented
	Entry  int // 1-based position of the offending blueprint, 0 if unknown
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	prefix := "malformed catalog"
	switch {
	case e.Line > 0:
		prefix = fmt.Sprintf("malformed catalog at line %d", e.Line)
	case e.Entry > 0:
		prefix = fmt.Sprintf("malformed catalog at entry %d", e.Entry)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError indicates an unknown catalog format name
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported catalog format %q (expected text or json)", e.Format)
}
