package aggregator

import (
	"fmt"
	"io"
)

// Artifact layout markers
const (
	headerFormat         = "# This is the project file for '%s'\n\n"
	configSectionMarker  = "# ---- CONFIGURATION FILES ----\n\n"
	projectSectionMarker = "# ---- PROJECT FILES ----\n\n"
	beginFormat          = "# ---- BEGIN %s ----\n"
	endFormat            = "\n# ---- END %s ----\n\n"
)

func writeHeader(w io.Writer, preamble, displayName string) error {
	if _, err := io.WriteString(w, preamble); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, headerFormat, displayName)
	return err
}

func writeBegin(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, beginFormat, name)
	return err
}

func writeEnd(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, endFormat, name)
	return err
}
