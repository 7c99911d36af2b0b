// Package aggregator flattens a project tree into a single text artifact.
//
// One run walks the tree once, sorts matching files into a configuration
// section and a project section, and writes both sections in that order to
// <display name><suffix> in the output directory. Configuration-name matches
// always win over extension matches; hidden entries are skipped unless asked
// for. The artifact is created fresh on every run.
package aggregator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/ripper/internal/fileutil"
	"github.com/harrison/ripper/internal/filelock"
	"github.com/harrison/ripper/internal/logger"
	"github.com/harrison/ripper/internal/rules"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrLocked is returned when another run is writing the same artifact.
var ErrLocked = filelock.ErrLocked

// Options holds the fixed settings of an Aggregator.
type Options struct {
	// Preamble is written verbatim before the header line
	Preamble string

	// OutputSuffix is appended to the display name to form the artifact name
	OutputSuffix string

	// OutputDir is where the artifact is created (empty = current directory)
	OutputDir string

	// Logger receives progress messages (nil = discard)
	Logger logger.Logger
}

// Aggregator writes aggregate artifacts. It holds no per-run state and is
// safe to reuse; concurrent runs on the same artifact are refused.
type Aggregator struct {
	rules rules.RuleSet
	opts  Options
	log   logger.Logger
}

// New creates an Aggregator with a fixed rule set and options.
func New(rs rules.RuleSet, opts Options) *Aggregator {
	var l logger.Logger = logger.Nop()
	if opts.Logger != nil {
		l = opts.Logger
	}
	return &Aggregator{rules: rs, opts: opts, log: l}
}

// match is one file selected for the artifact.
type match struct {
	path string
	name string
}

// DisplayName returns the final path segment of rootDir, or of the current
// working directory when rootDir is empty.
func DisplayName(rootDir string) (string, error) {
	root, err := resolveRoot(rootDir)
	if err != nil {
		return "", err
	}
	name := filepath.Base(root)
	// filesystem root has no final segment
	if name == string(filepath.Separator) || name == "." {
		return "root", nil
	}
	return name, nil
}

// ArtifactPath returns the absolute path of the artifact for rootDir.
func (a *Aggregator) ArtifactPath(rootDir string) (string, error) {
	if a.opts.OutputSuffix == "" {
		return "", errors.New("output suffix is empty")
	}
	name, err := DisplayName(rootDir)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(filepath.Join(a.opts.OutputDir, name+a.opts.OutputSuffix))
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return path, nil
}

// Aggregate writes the artifact for rootDir and returns its path.
// Any unreadable directory or file aborts the run; whatever was written so
// far is left on disk. Invalid UTF-8 in file content is replaced with U+FFFD.
func (a *Aggregator) Aggregate(rootDir string, includeHidden bool) (_ string, err error) {
	root, err := resolveRoot(rootDir)
	if err != nil {
		return "", err
	}
	displayName, err := DisplayName(root)
	if err != nil {
		return "", err
	}
	outPath, err := a.ArtifactPath(root)
	if err != nil {
		return "", err
	}

	lock, err := filelock.Acquire(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to lock output artifact: %w", err)
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil {
			a.log.LogWarn(rerr.Error())
		}
	}()

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output artifact: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output artifact: %w", cerr)
		}
	}()

	w := bufio.NewWriter(out)
	if err := writeHeader(w, a.opts.Preamble, displayName); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	configs, projects, err := a.collect(root, includeHidden, outPath, lock.Path())
	if err != nil {
		return "", err
	}

	if err := a.writeSection(w, configSectionMarker, configs); err != nil {
		return "", err
	}
	if err := a.writeSection(w, projectSectionMarker, projects); err != nil {
		return "", err
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write output artifact: %w", err)
	}

	a.log.LogDebug(fmt.Sprintf("Wrote %d configuration file(s) and %d project file(s)", len(configs), len(projects)))
	a.log.LogInfo(fmt.Sprintf("All project files have been copied into '%s'", outPath))
	return outPath, nil
}

// collect walks root once and splits matches into the two sections,
// each in walk order. The artifact and its lock file are never matched.
func (a *Aggregator) collect(root string, includeHidden bool, skip ...string) (configs, projects []match, err error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}

	err = fileutil.Walk(root, fileutil.WalkOptions{IncludeHidden: includeHidden}, func(path, name string) error {
		if skipped[path] {
			return nil
		}
		switch a.rules.Classify(name) {
		case rules.Config:
			configs = append(configs, match{path: path, name: name})
		case rules.Project:
			projects = append(projects, match{path: path, name: name})
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return configs, projects, nil
}

func (a *Aggregator) writeSection(w io.Writer, marker string, matches []match) error {
	if _, err := io.WriteString(w, marker); err != nil {
		return fmt.Errorf("failed to write section marker: %w", err)
	}
	for _, m := range matches {
		if err := writeRecord(w, m); err != nil {
			return err
		}
		a.log.LogDebug(fmt.Sprintf("Added %s", m.path))
	}
	return nil
}

// writeRecord writes the BEGIN marker, the decoded content and the END marker.
func writeRecord(w io.Writer, m match) error {
	f, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", m.path, err)
	}
	defer f.Close()

	if err := writeBegin(w, m.name); err != nil {
		return fmt.Errorf("failed to write record for %s: %w", m.path, err)
	}
	if _, err := io.Copy(w, transform.NewReader(f, unicode.UTF8.NewDecoder())); err != nil {
		return fmt.Errorf("failed to copy %s: %w", m.path, err)
	}
	if err := writeEnd(w, m.name); err != nil {
		return fmt.Errorf("failed to write record for %s: %w", m.path, err)
	}
	return nil
}

func resolveRoot(rootDir string) (string, error) {
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}
	return root, nil
}
