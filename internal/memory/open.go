package memory

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lazypower/pimemory/internal/config"
)

// Open builds a session Store for the project rooted at projectDir, using
// the current working directory when projectDir is empty. Paths are
// resolved once, here.
func Open(cfg config.Config, projectDir string, log *zap.Logger, opts ...Option) (*Store, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working dir: %w", err)
		}
		projectDir = wd
	}
	globalPath, err := cfg.GlobalMemoryPath()
	if err != nil {
		return nil, fmt.Errorf("resolve global memory path: %w", err)
	}

	files := NewFiles(globalPath, cfg.ProjectMemoryPath(projectDir), log)
	return NewStore(files, append([]Option{WithLogger(log)}, opts...)...), nil
}
