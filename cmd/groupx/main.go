// Command groupx explores finite groups from the command line: summaries,
// subgroup lattices, solvable decompositions and the reference library.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
