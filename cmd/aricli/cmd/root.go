package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aricli",
	Short: "aricli batch-scores Adjusted Rand Index across cluster partitions",
	Long: `aricli reads a dense (F, P, N) partition tensor and computes the
Adjusted Rand Index for every unordered feature pair and partition-variant
combination it contains, using the same data-parallel engine the
batchari package exposes as a library.`,
}

func Execute() error {
	return rootCmd.Execute()
}
