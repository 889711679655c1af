package vocab

import "fmt"

// Error represents a vocabulary loading or validation failure.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("vocabulary error for %s: %s: %v", e.Path, e.Message, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("vocabulary error for %s: %s", e.Path, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("vocabulary error: %s: %v", e.Message, e.Cause)
	default:
		return fmt.Sprintf("vocabulary error: %s", e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}
