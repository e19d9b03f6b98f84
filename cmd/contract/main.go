package main

import (
	"os"

	"github.com/gustavo/contract-cli/internal/app"
)

func main() {
	runner := app.NewRunner()
	os.Exit(runner.Run(os.Args[1:]))
}
