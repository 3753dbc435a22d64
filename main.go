package main

import (
	"github.com/xkilldash9x/verdict-cli/cmd"
)

// main is the entry point for the verdict CLI.
func main() {
	cmd.Execute()
}
