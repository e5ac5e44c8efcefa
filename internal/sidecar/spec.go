package sidecar

import (
	"github.com/prdeck/prdeck-desktop/internal/logger"
)

// Spec describes one sidecar launch. It is constructed fresh per platform
// at startup and never mutated after construction.
type Spec struct {
	Name    string            // logical name, used for log files and metrics
	Program string            // executable path, or bare name resolved via PATH
	Args    []string          // ordered argument list, may be empty
	WorkDir string            // optional working directory
	Log     logger.FileConfig // rotating stdout/stderr capture; zero value discards output
}
