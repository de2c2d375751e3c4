// Command writerpoolctl is a thin HTTP client for writerpoold,
// demonstrating client-side cooperation with a busy journal writer via
// backoff-and-retry instead of the pool ever blocking internally.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
