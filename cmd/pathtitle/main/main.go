package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pathtitle/cmd/pathtitle"
	"github.com/arthur-debert/pathtitle/pkg/ui/styles"
)

func main() {
	rootCmd := pathtitle.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Default().Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
