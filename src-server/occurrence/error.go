package occurrence

import (
	"errors"
	"fmt"
	"strings"
)

// Returned by (*Tracker).Current before any window has been reported.
var ErrWindowUnset = errors.New("no visible window set")

// A recurring definition the generator can't expand: weekday missing or
// outside 0-6, or an unparseable date. This is a contract violation by the
// data layer, not a transient condition.
type InvalidDefinitionError struct {
	EventID string
	args    map[string]any
}

func NewInvalidDefinitionError(eventID string, args map[string]any) *InvalidDefinitionError {
	if args == nil {
		args = make(map[string]any)
	}
	return &InvalidDefinitionError{
		EventID: eventID,
		args:    args,
	}
}

func (e *InvalidDefinitionError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid definition | id: ")
	sb.WriteString(e.EventID)
	for key, value := range e.args {
		sb.WriteString(fmt.Sprintf(" %s: %v", key, value))
	}
	return sb.String()
}
