package main

import (
	"os"

	"github.com/slashcmd/slashcmd/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
