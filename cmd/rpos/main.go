// Command rpos runs the RPOS gateway API and its maintenance tasks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rpos:", err)
		os.Exit(1)
	}
}
