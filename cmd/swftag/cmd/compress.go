package cmd

import (
	"fmt"

	"github.com/rawbytedev/swfcodec"
	"github.com/rawbytedev/swfcodec/pkg/tagfile"
	"github.com/spf13/cobra"
)

// repack copies the record stream at in to out after checking that it
// decodes. Either side is compressed according to its extension.
func repack(c *swfcodec.Codec, in, out string) (int, error) {
	raw, err := tagfile.Load(in)
	if err != nil {
		return 0, err
	}
	recs, err := c.Decode(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}
	return len(recs), tagfile.Save(out, raw)
}

var compressCmd = &cobra.Command{
	Use:   "compress <in> <out>",
	Short: "Re-pack a record stream",
	Long: `Copy a record stream to another file, compressing or decompressing
according to the .zst or .lz4 extension of each name.

Example:
  swftag compress movie.tags movie.tags.zst`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := repack(codec, args[0], args[1])
		if err != nil {
			return err
		}
		logger.Debug("repacked", "in", args[0], "out", args[1], "records", n)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", args[1], n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)
}
