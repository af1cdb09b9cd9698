package main

import (
	"os"

	"dlscan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
