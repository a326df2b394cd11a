// Command scriptguard is the CLI entry point: it wires no logic of its
// own, just hands off to internal/cli.
package main

import (
	"fmt"
	"os"

	"github.com/hallowmark/scriptguard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
