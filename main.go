package main

import (
	"os"

	"github.com/dagu-org/sqlsplit/internal/build"
	"github.com/dagu-org/sqlsplit/internal/cmd"
)

var version = "0.0.0"

func main() {
	build.Version = version
	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
