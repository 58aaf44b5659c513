package main

import (
	"fmt"
	"os"

	"github.com/penwyp/go-feed-digest/commands"
	"github.com/penwyp/go-feed-digest/internal/util"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, util.FormatErrorTitle("Error:"), err)
		os.Exit(commands.ExitCode(err))
	}
}
