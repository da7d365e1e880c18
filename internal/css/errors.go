package css

import "fmt"

// ErrorKind classifies why a color text failed to parse.
type ErrorKind int

const (
	// BadHexLength is a hex color without exactly 3 or 6 digits.
	BadHexLength ErrorKind = iota + 1
	// BadNumber is a component that is not a number.
	BadNumber
	// BadUnit is a number with a unit the component does not accept.
	BadUnit
	// UnknownFunction is a function name other than oklab or oklch.
	UnknownFunction
	// OutOfStructure is a wrong component count, a stray separator or an
	// unbalanced parenthesis.
	OutOfStructure
)

func (k ErrorKind) String() string {
	switch k {
	case BadHexLength:
		return "bad hex length"
	case BadNumber:
		return "bad number"
	case BadUnit:
		return "bad unit"
	case UnknownFunction:
		return "unknown function"
	case OutOfStructure:
		return "malformed color"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes the token a color text failed on. Pos is the byte
// offset of the token in the input.
type ParseError struct {
	Kind  ErrorKind
	Pos   int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %q: %s", e.Kind, e.Pos, e.Token, e.Msg)
}

func errorf(kind ErrorKind, pos int, token, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Token: token, Msg: fmt.Sprintf(format, args...)}
}
