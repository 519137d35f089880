package cmd

import (
	"fmt"

	"github.com/clustermatch/batchari"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the batchari module version",
	Run: func(cmd *cobra.Command, args []string) {
		version, sum := ari.Version()
		if version == "" {
			fmt.Println("version: (not built with module support)")
			return
		}
		fmt.Printf("version: %s\nsum: %s\n", version, sum)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
