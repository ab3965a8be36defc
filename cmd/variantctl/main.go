// cmd/variantctl/main.go
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "variantctl:", err)
		os.Exit(1)
	}
}
