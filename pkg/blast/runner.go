package blast

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ToolError reports a BLAST invocation that could not be launched or
// exited non-zero.
type ToolError struct {
	Mode   Mode
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Mode, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s failed: %v", e.Mode, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Runner executes BLAST+ searches against a local database.
type Runner struct {
	// BinDir, when set, is prepended to the program name so BLAST+
	// installs outside PATH can be used.
	BinDir string
	Log    *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Log: log}
}

// Run performs one search, writing XML results to out. A readable file
// already present at out counts as a finished search and the external
// tool is not invoked. The cache key is presence only; results are not
// invalidated when the query or database changes.
func (r *Runner) Run(ctx context.Context, mode Mode, query, db, out string) error {
	if f, err := os.Open(out); err == nil {
		f.Close()
		r.Log.Info("Result file exists, skipping BLAST",
			zap.String("output", out))
		return nil
	}

	program := string(mode)
	if r.BinDir != "" {
		program = filepath.Join(r.BinDir, program)
	}

	cmd := exec.CommandContext(ctx, program,
		"-query", query,
		"-db", db,
		"-out", out,
		"-outfmt", "5", // XML
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	r.Log.Info("Running BLAST",
		zap.String("mode", string(mode)),
		zap.String("query", query),
		zap.String("db", db))

	if err := cmd.Run(); err != nil {
		// A partial result file would satisfy the presence cache and
		// wedge this gene on every later run.
		os.Remove(out)
		return &ToolError{Mode: mode, Stderr: stderr.String(), Err: err}
	}
	return nil
}
