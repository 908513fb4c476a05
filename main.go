// main holds the entry logic for the constfit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quarkw/constfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
