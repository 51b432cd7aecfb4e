package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Files maps each scope to its memory file on disk. It is the only writer
// of those files.
type Files struct {
	paths map[Scope]string
	log   *zap.Logger
}

// NewFiles binds the global and project scopes to the given paths.
// A nil logger disables logging.
func NewFiles(globalPath, projectPath string, log *zap.Logger) *Files {
	if log == nil {
		log = zap.NewNop()
	}
	return &Files{
		paths: map[Scope]string{
			ScopeGlobal:  globalPath,
			ScopeProject: projectPath,
		},
		log: log,
	}
}

// Path returns the file path bound to scope, or "" for an unknown scope.
func (f *Files) Path(scope Scope) string {
	return f.paths[scope]
}

func (f *Files) path(scope Scope) (string, error) {
	p, ok := f.paths[scope]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
	return p, nil
}

// Exists reports whether the scope's file is present.
func (f *Files) Exists(scope Scope) bool {
	p, err := f.path(scope)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// EnsureInitialized creates the parent directory and writes the scope's
// skeleton when the file is absent. An existing file is left untouched.
func (f *Files) EnsureInitialized(scope Scope) error {
	p, err := f.path(scope)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return &IOError{Op: "create directory for", Scope: scope, Path: p, Err: err}
	}
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "stat", Scope: scope, Path: p, Err: err}
	}

	if err := writeFile(p, Skeleton(scope)); err != nil {
		return &IOError{Op: "initialize", Scope: scope, Path: p, Err: err}
	}
	f.log.Debug("initialized memory file", zap.String("scope", string(scope)), zap.String("path", p))
	return nil
}

// Read returns the raw content of the scope's file. A missing or unreadable
// file reports false; read errors never escape.
func (f *Files) Read(scope Scope) (string, bool) {
	p, err := f.path(scope)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.log.Debug("treating unreadable memory file as absent",
				zap.String("scope", string(scope)), zap.String("path", p), zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// Write replaces the scope's file with content. The write goes through a
// temporary file and a rename so readers never see a partial file. When the
// scope's path is a symlink, the link is kept and its target is replaced.
func (f *Files) Write(scope Scope, content string) error {
	p, err := f.path(scope)
	if err != nil {
		return err
	}
	if err := writeFile(p, content); err != nil {
		return &IOError{Op: "write", Scope: scope, Path: p, Err: err}
	}
	return nil
}

// writeFile replaces the file at path atomically. A symlinked path is
// resolved first so the rename replaces the link's target, not the link.
func writeFile(path, content string) error {
	if info, err := os.Lstat(path); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			return err
		}
		path = target
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), filePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
