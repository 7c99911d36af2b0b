package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for ripper
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ripper",
		Short: "Flatten a project tree into a single text file",
		Long: `Ripper walks a project directory and concatenates the contents of its
configuration files and source files into one text artifact named
<project>_ripped.txt, ready to hand to an LLM.

Configuration files (requirements.txt, settings.json, config.yaml, ...) are
written first, followed by project files matched by extension. Hidden files
and directories are skipped unless -a is given.

Rules can be overridden in .ripper/config.yaml or with --config.

Examples:
  # Aggregate the current directory
  ripper

  # Include hidden files and directories
  ripper -a

  # Clone a repository, aggregate it, then remove the clone
  ripper -github https://github.com/user/project.git`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runCommand,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().String("github", "", "Clone this repository, aggregate it, then remove the clone")
	cmd.Flags().BoolP("all", "a", false, "Include hidden files and directories")
	cmd.Flags().String("config", "", "Path to config file (default: .ripper/config.yaml)")
	cmd.Flags().Bool("verbose", false, "Log every aggregated file")

	return cmd
}
