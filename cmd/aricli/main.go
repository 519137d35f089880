package main

import (
	"os"

	"github.com/clustermatch/batchari/cmd/aricli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
