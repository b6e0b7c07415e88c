package staircase

import "fmt"

// Kind classifies controller errors.
type Kind int

const (
	InvalidInput Kind = iota + 1
	InvalidState
	DegenerateValue
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidState:
		return "invalid state"
	case DegenerateValue:
		return "degenerate value"
	}
	return "unknown"
}

// Error is returned by every failing controller call. Match a class of
// failure with errors.Is against the Err* sentinels.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "staircase: " + e.Kind.String()
	}
	return "staircase: " + e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidInput    = &Error{Kind: InvalidInput}
	ErrInvalidState    = &Error{Kind: InvalidState}
	ErrDegenerateValue = &Error{Kind: DegenerateValue}
)

var errStopped = &Error{Kind: InvalidState, Msg: "run already stopped"}

func invalidf(format string, args ...any) error {
	return &Error{Kind: InvalidInput, Msg: fmt.Sprintf(format, args...)}
}
