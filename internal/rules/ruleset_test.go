package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultRules() RuleSet {
	return New(
		[]string{"requirements.txt", "settings.json", "config.yaml", "hyperparameters.json", "settings.py"},
		[]string{".py", ".txt", ".json", ".md"},
	)
}

func TestClassify(t *testing.T) {
	rs := defaultRules()

	tests := []struct {
		name     string
		expected Category
	}{
		{"requirements.txt", Config},
		{"settings.py", Config},
		{"config.yaml", Config},
		{"main.py", Project},
		{"notes.md", Project},
		{"data.json", Project},
		{"image.png", None},
		{"Makefile", None},
		{"README.MD", None},
		{"archive.tar.py", Project},
		{"trailing.", None},
		{".py", None},
		{"sub_settings.py", Project},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rs.Classify(tt.name))
		})
	}
}

func TestConfigNameBeatsExtension(t *testing.T) {
	rs := New([]string{"config.yaml"}, []string{".yaml"})

	assert.Equal(t, Config, rs.Classify("config.yaml"))
	assert.Equal(t, Project, rs.Classify("other.yaml"))
}

func TestNewNormalizesExtensions(t *testing.T) {
	rs := New(nil, []string{"go", ".md", "", "."})

	assert.Equal(t, []string{".go", ".md"}, rs.Extensions())
	assert.Equal(t, Project, rs.Classify("main.go"))
}

func TestZeroValueMatchesNothing(t *testing.T) {
	var rs RuleSet
	assert.Equal(t, None, rs.Classify("main.py"))
	assert.False(t, rs.IsConfig("requirements.txt"))
}

func TestExt(t *testing.T) {
	tests := map[string]string{
		"main.py":    ".py",
		"a.b.c":      ".c",
		"noext":      "",
		".bashrc":    "",
		"..py":       "",
		".env.local": ".local",
		"file.":      ".",
		"UPPER.PY":   ".PY",
	}
	for name, want := range tests {
		assert.Equal(t, want, Ext(name), "Ext(%q)", name)
	}
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".git"))
	assert.True(t, IsHidden(".env"))
	assert.False(t, IsHidden("main.py"))
	assert.False(t, IsHidden(""))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "config", Config.String())
	assert.Equal(t, "project", Project.String())
	assert.Equal(t, "none", None.String())
}
