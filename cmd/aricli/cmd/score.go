package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/clustermatch/batchari"
	"github.com/spf13/cobra"
)

// tensorFile is the on-disk shape aricli reads: a JSON object mirroring
// ari.Tensor, with Labels as a flat array in (F, P, N) row-major order.
type tensorFile struct {
	Labels []int32 `json:"labels"`
	F      int     `json:"f"`
	P      int     `json:"p"`
	N      int     `json:"n"`
}

var scoreInputPath string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score every feature pair and partition variant in a partition tensor",
	RunE:  runScore,
}

func init() {
	log.SetFlags(0)
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVarP(&scoreInputPath, "input", "i", "", "path to a JSON partition tensor (defaults to stdin)")
}

func runScore(cmd *cobra.Command, args []string) error {
	tf, err := readTensorFile(scoreInputPath)
	if err != nil {
		return err
	}

	scores, err := ari.ComputeARI(ari.Tensor{Labels: tf.Labels, F: tf.F, P: tf.P, N: tf.N})
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(scores)
}

func readTensorFile(path string) (tensorFile, error) {
	var (
		r   = os.Stdin
		err error
	)
	if path != "" {
		r, err = os.Open(path)
		if err != nil {
			return tensorFile{}, fmt.Errorf("opening %s: %w", path, err)
		}
		defer r.Close()
	}

	var tf tensorFile
	if err := json.NewDecoder(r).Decode(&tf); err != nil {
		return tensorFile{}, fmt.Errorf("decoding partition tensor: %w", err)
	}
	return tf, nil
}
