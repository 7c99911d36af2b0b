// Package rules classifies file names into the configuration and project
// sections of an aggregate artifact.
package rules

import (
	"sort"
	"strings"
)

// HiddenMarker is the leading character of hidden files and directories.
const HiddenMarker = "."

// Category is the section a file belongs to.
type Category int

const (
	// None means the file is not aggregated.
	None Category = iota
	// Config means the file name is in the configuration name set.
	Config
	// Project means the file extension is in the project extension set.
	Project
)

// String returns the section name for the category.
func (c Category) String() string {
	switch c {
	case Config:
		return "config"
	case Project:
		return "project"
	default:
		return "none"
	}
}

// RuleSet is an immutable pair of configuration file names and project
// file extensions. The zero value matches nothing.
type RuleSet struct {
	configNames map[string]struct{}
	extensions  map[string]struct{}
}

// New builds a RuleSet. Extensions given without a leading dot get one.
// Empty extensions are ignored.
func New(configNames, extensions []string) RuleSet {
	rs := RuleSet{
		configNames: make(map[string]struct{}, len(configNames)),
		extensions:  make(map[string]struct{}, len(extensions)),
	}
	for _, name := range configNames {
		if name == "" {
			continue
		}
		rs.configNames[name] = struct{}{}
	}
	for _, ext := range extensions {
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		rs.extensions[ext] = struct{}{}
	}
	return rs
}

// Classify returns the section for a file name. A configuration name match
// wins over an extension match.
func (rs RuleSet) Classify(name string) Category {
	if rs.IsConfig(name) {
		return Config
	}
	if ext := Ext(name); ext != "" {
		if _, ok := rs.extensions[ext]; ok {
			return Project
		}
	}
	return None
}

// IsConfig reports whether name is exactly one of the configuration names.
func (rs RuleSet) IsConfig(name string) bool {
	_, ok := rs.configNames[name]
	return ok
}

// ConfigNames returns the configuration names, sorted.
func (rs RuleSet) ConfigNames() []string {
	return sortedKeys(rs.configNames)
}

// Extensions returns the project extensions, sorted.
func (rs RuleSet) Extensions() []string {
	return sortedKeys(rs.extensions)
}

// Ext returns the extension of name including the leading dot, or "" when
// the name has none. A leading dot alone does not start an extension, so
// ".bashrc" has no extension.
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	// "..py"-style names: everything before the final dot is dots.
	if strings.Trim(name[:i], ".") == "" {
		return ""
	}
	return name[i:]
}

// IsHidden reports whether name starts with the hidden-entry marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenMarker)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
