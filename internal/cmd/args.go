package cmd

import "strings"

// legacyLongFlags may be spelled with a single dash on the command line.
var legacyLongFlags = []string{"github"}

// NormalizeArgs rewrites single-dash long flags ("-github <url>") to the
// double-dash form cobra expects. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	for i, arg := range out {
		if arg == "--" {
			break
		}
		for _, name := range legacyLongFlags {
			if arg == "-"+name || strings.HasPrefix(arg, "-"+name+"=") {
				out[i] = "-" + arg
			}
		}
	}
	return out
}
