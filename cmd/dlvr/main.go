package main

import (
	"fmt"
	"os"

	"github.com/scbrown/deliverable/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dlvr:", err)
		os.Exit(1)
	}
}
