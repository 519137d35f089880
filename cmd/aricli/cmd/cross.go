package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clustermatch/batchari"
	"github.com/spf13/cobra"
)

var (
	crossXPath string
	crossYPath string
)

var crossCmd = &cobra.Command{
	Use:   "cross",
	Short: "Score every feature pair across two separate partition tensors",
	Long: `cross scores every (feature in X) x (feature in Y) combination,
unlike score, which only covers the unordered pairs within a single tensor.
Useful when X and Y describe different collections of clusterings over the
same N objects.`,
	RunE: runCross,
}

func init() {
	rootCmd.AddCommand(crossCmd)
	crossCmd.Flags().StringVarP(&crossXPath, "x", "x", "", "path to the first JSON partition tensor (required)")
	crossCmd.Flags().StringVarP(&crossYPath, "y", "y", "", "path to the second JSON partition tensor (required)")
	crossCmd.MarkFlagRequired("x")
	crossCmd.MarkFlagRequired("y")
}

func runCross(cmd *cobra.Command, args []string) error {
	xf, err := readTensorFile(crossXPath)
	if err != nil {
		return fmt.Errorf("reading x: %w", err)
	}
	yf, err := readTensorFile(crossYPath)
	if err != nil {
		return fmt.Errorf("reading y: %w", err)
	}

	x := ari.Tensor{Labels: xf.Labels, F: xf.F, P: xf.P, N: xf.N}
	y := ari.Tensor{Labels: yf.Labels, F: yf.F, P: yf.P, N: yf.N}

	scores, err := ari.ComputeARICross(x, y)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(scores)
}
