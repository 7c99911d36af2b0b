package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/ripper/internal/rules"
)

// WalkOptions configures the directory walk
type WalkOptions struct {
	// IncludeHidden visits files and directories whose names start with "."
	IncludeHidden bool
}

// VisitFunc is called once per file, with the full path and the base name.
// Returning an error stops the walk and the error is returned from Walk.
type VisitFunc func(path string, name string) error

// Walk visits every file under root, top-down. Within a directory, files are
// visited before subdirectories, each in the lexical order os.ReadDir yields.
// Hidden subdirectories are pruned from the to-visit list before descending,
// so nothing below them is ever read. Symlinked directories are not followed.
func Walk(root string, opts WalkOptions, visit VisitFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root)
	}

	return walkDir(root, opts, visit)
}

func walkDir(dir string, opts WalkOptions, visit VisitFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var subdirs, files []string
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, entry.Name())
		case entry.Type()&fs.ModeSymlink != 0 && isDirLink(filepath.Join(dir, entry.Name())):
			// listed as a directory but never descended into
		default:
			files = append(files, entry.Name())
		}
	}

	for _, name := range filterHidden(files, opts.IncludeHidden) {
		if err := visit(filepath.Join(dir, name), name); err != nil {
			return err
		}
	}

	for _, name := range filterHidden(subdirs, opts.IncludeHidden) {
		if err := walkDir(filepath.Join(dir, name), opts, visit); err != nil {
			return err
		}
	}

	return nil
}

// filterHidden returns names without hidden entries unless includeHidden is set.
func filterHidden(names []string, includeHidden bool) []string {
	if includeHidden {
		return names
	}
	kept := names[:0:0]
	for _, name := range names {
		if !rules.IsHidden(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

// isDirLink reports whether a symlink resolves to a directory.
// Broken links report false and are handled as files.
func isDirLink(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
