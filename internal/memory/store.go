package memory

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Memory is the loaded content of one scope.
type Memory struct {
	Scope   Scope
	Path    string
	Content string
	Found   bool
}

// Empty reports whether there is nothing worth showing for this scope.
func (m Memory) Empty() bool {
	return !m.Found || m.Content == ""
}

// Snapshot holds both scopes as last read by a Store.
type Snapshot struct {
	Global  Memory
	Project Memory
}

// Get returns the memory for scope.
func (s Snapshot) Get(scope Scope) Memory {
	if scope == ScopeProject {
		return s.Project
	}
	return s.Global
}

// Loaded lists the scopes that have content, in display order.
func (s Snapshot) Loaded() []Scope {
	var out []Scope
	for _, scope := range Scopes {
		if !s.Get(scope).Empty() {
			out = append(out, scope)
		}
	}
	return out
}

// Store is the per-session memory store. Build one at session start and
// drop it at session end; it holds nothing but the read cache.
type Store struct {
	files *Files
	now   func() time.Time
	log   *zap.Logger
	cache Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to date entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates a Store over files.
func NewStore(files *Files, opts ...Option) *Store {
	s := &Store{
		files: files,
		now:   func() time.Time { return time.Now().UTC() },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = Snapshot{
		Global:  Memory{Scope: ScopeGlobal, Path: files.Path(ScopeGlobal)},
		Project: Memory{Scope: ScopeProject, Path: files.Path(ScopeProject)},
	}
	return s
}

// Path returns the file path bound to scope.
func (s *Store) Path(scope Scope) string {
	return s.files.Path(scope)
}

// Exists reports whether the scope's file is present on disk.
func (s *Store) Exists(scope Scope) bool {
	return s.files.Exists(scope)
}

// EnsureInitialized writes the scope's skeleton if its file is absent.
func (s *Store) EnsureInitialized(scope Scope) error {
	return s.files.EnsureInitialized(scope)
}

// Load reads both scopes, caches them and returns the result.
func (s *Store) Load() Snapshot {
	for _, scope := range Scopes {
		s.refresh(scope)
	}
	for _, scope := range s.cache.Loaded() {
		m := s.cache.Get(scope)
		s.log.Debug("memory loaded",
			zap.String("scope", string(scope)),
			zap.String("path", m.Path),
			zap.Strings("categories", Parse(m.Content).Categories()))
	}
	return s.cache
}

// Cached returns the last loaded snapshot without touching disk.
func (s *Store) Cached() Snapshot {
	return s.cache
}

// Remember appends entry under category in scope, dated with the store's clock.
func (s *Store) Remember(scope Scope, category, entry string) error {
	return s.RememberAt(scope, category, entry, s.now())
}

// RememberAt appends entry under category in scope with the given date.
// The scope's file is created from its skeleton first if needed. Write
// failures are returned as *IOError and are not retried.
func (s *Store) RememberAt(scope Scope, category, entry string, date time.Time) error {
	if !scope.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
	category = strings.TrimSpace(category)
	switch {
	case category == "":
		return ErrEmptyCategory
	case strings.ContainsAny(category, "\r\n"):
		return ErrInvalidCategory
	}
	entry = NormalizeEntry(entry)
	if entry == "" {
		return ErrEmptyEntry
	}

	if err := s.files.EnsureInitialized(scope); err != nil {
		return err
	}
	content, ok := s.files.Read(scope)
	if !ok {
		// Initialized but unreadable: writing now would clobber the file.
		return &IOError{Op: "read", Scope: scope, Path: s.files.Path(scope), Err: errUnreadable}
	}

	doc := Parse(content)
	doc.Insert(category, Entry{Text: entry, Date: date})
	if err := s.files.Write(scope, doc.String()); err != nil {
		return err
	}

	s.refresh(scope)
	s.log.Info("remembered",
		zap.String("scope", string(scope)),
		zap.String("category", category),
		zap.String("path", s.files.Path(scope)))
	return nil
}

// NormalizeEntry returns entry text as RememberAt stores it: line breaks
// folded to spaces and the ends trimmed. Inner spacing is kept.
func NormalizeEntry(entry string) string {
	return strings.TrimSpace(singleLine(entry))
}

// View re-reads both scopes and formats them for display.
func (s *Store) View() string {
	snap := s.Load()

	var b strings.Builder
	for i, scope := range Scopes {
		m := snap.Get(scope)
		if m.Empty() {
			fmt.Fprintf(&b, "📝 No %s memory found", scope)
		} else {
			fmt.Fprintf(&b, "📝 %s Memory (%s):\n%s", scope.Title(), m.Path, m.Content)
		}
		if i < len(Scopes)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (s *Store) refresh(scope Scope) {
	content, found := s.files.Read(scope)
	m := Memory{Scope: scope, Path: s.files.Path(scope), Content: content, Found: found}
	if scope == ScopeProject {
		s.cache.Project = m
	} else {
		s.cache.Global = m
	}
}
