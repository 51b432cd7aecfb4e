package memory

import (
	"errors"
	"fmt"
	"strings"
)

// Scope selects which memory document an operation targets.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// Scopes lists every scope in display order.
var Scopes = []Scope{ScopeGlobal, ScopeProject}

var (
	ErrUnknownScope    = errors.New("memory: unknown scope")
	ErrEmptyCategory   = errors.New("memory: category is empty")
	ErrInvalidCategory = errors.New("memory: category must be a single line")
	ErrEmptyEntry      = errors.New("memory: entry is empty")

	errUnreadable = errors.New("file exists but cannot be read")
)

// ParseScope parses a user-supplied scope name, ignoring case and
// surrounding whitespace.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeProject:
		return ScopeProject, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	return s == ScopeGlobal || s == ScopeProject
}

// Title returns the capitalized scope name, e.g. "Global".
func (s Scope) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// IOError reports a failed filesystem operation on a memory file.
type IOError struct {
	Op    string
	Scope Scope
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("memory: %s %s memory %s: %v", e.Op, e.Scope, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
