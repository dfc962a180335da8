// Command pathtitle-manpage writes the root man page to stdout for packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pathtitle/cmd/pathtitle"
	"github.com/arthur-debert/pathtitle/internal/version"
)

func main() {
	rootCmd := pathtitle.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PATHTITLE",
		Section: "1",
		Source:  "pathtitle " + version.Version,
		Manual:  "pathtitle manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
