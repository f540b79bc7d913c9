package main

import (
	"os"

	"github.com/inkforge/dtfopt/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
