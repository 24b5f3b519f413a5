// Command rectangle compiles and runs the declarative UI language
// described by spec.md: components with typed properties compile through
// a stack bytecode VM to an SVG document.
package main

import (
	"fmt"
	"os"

	"github.com/jialihong/rectangle/cmd/rectangle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
