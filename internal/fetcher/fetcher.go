// Package fetcher materialises a remote git repository on local disk before
// aggregation and removes it afterwards.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/harrison/ripper/internal/logger"
)

// ErrInvalidURL indicates a repository URL no local directory name can be derived from.
var ErrInvalidURL = errors.New("invalid repository url")

// CommandRunner abstracts external command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

// ExecCommandRunner executes commands directly with os/exec.
type ExecCommandRunner struct {
	WorkDir string // Working directory for commands (empty = current dir)
}

// Run executes a command and returns combined stdout/stderr.
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.WorkDir != "" {
		cmd.Dir = r.WorkDir
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// Fetcher clones remote repositories into BaseDir.
type Fetcher struct {
	// CommandRunner runs git (nil = ExecCommandRunner)
	CommandRunner CommandRunner

	// BaseDir is the parent of cloned directories (empty = current dir)
	BaseDir string

	log logger.Logger
}

// New creates a Fetcher that clones into baseDir using the git binary on PATH.
func New(baseDir string, log logger.Logger) *Fetcher {
	return NewWithRunner(&ExecCommandRunner{}, baseDir, log)
}

// NewWithRunner creates a Fetcher with a custom command runner.
// Useful for testing.
func NewWithRunner(runner CommandRunner, baseDir string, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{CommandRunner: runner, BaseDir: baseDir, log: log}
}

// RepoName derives the local directory name from the last path segment of
// url with a trailing ".git" removed.
//
//	https://github.com/user/project.git -> project
//	git@github.com:user/project.git     -> project
func RepoName(url string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	segment := trimmed
	if i := strings.LastIndexAny(trimmed, "/:\\"); i >= 0 {
		segment = trimmed[i+1:]
	}
	name := strings.TrimSuffix(segment, ".git")

	switch name {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return name, nil
}

// Fetch clones url into BaseDir/<repo name> and returns that directory.
// Any existing directory of the same name is removed first so the clone is clean.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(url), "-") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	name, err := RepoName(url)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(f.BaseDir, name)

	if _, err := os.Lstat(dir); err == nil {
		f.log.LogDebug(fmt.Sprintf("Removing existing directory '%s'", dir))
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("failed to remove existing directory %s: %w", dir, err)
		}
	}

	runner := f.CommandRunner
	if runner == nil {
		runner = &ExecCommandRunner{}
	}
	if _, err := runner.Run(ctx, "git", "clone", "--", url, dir); err != nil {
		// git may leave a partial checkout behind
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to clone %s: %w", url, err)
	}

	f.log.LogInfo(fmt.Sprintf("Cloned repository '%s' from %s", name, url))
	return dir, nil
}

// Cleanup recursively deletes a directory returned by Fetch.
func (f *Fetcher) Cleanup(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	f.log.LogInfo(fmt.Sprintf("Removed the cloned repository '%s' after processing", filepath.Base(dir)))
	return nil
}
