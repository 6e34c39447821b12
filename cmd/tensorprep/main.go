// main is the entry point for the tensorprep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/tensorprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
