package cmd

import (
	"fmt"

	"github.com/rawbytedev/swfcodec"
	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/tag"
	"github.com/rawbytedev/swfcodec/pkg/tagfile"
	"github.com/spf13/cobra"
)

// roundTrip decodes raw, copies every record and encodes the copies. It
// returns the number of records and the offset of the first differing
// byte, or -1 when the output matches raw.
func roundTrip(c *swfcodec.Codec, raw []byte) (int, int, error) {
	recs, err := c.Decode(raw)
	if err != nil {
		return 0, 0, err
	}
	copies := make([]coder.Record, len(recs))
	for i, rec := range recs {
		if copies[i], err = tag.Copy(rec); err != nil {
			return 0, 0, fmt.Errorf("record %d: %w", i, err)
		}
	}
	out, err := c.Encode(copies...)
	if err != nil {
		return 0, 0, err
	}
	return len(recs), firstDiff(raw, out), nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

var roundTripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Check that a file re-encodes to the same bytes",
	Long: `Decode every record in a file, copy it and encode the copies again.
Records written with a long header where a short one fits do not survive
byte for byte.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := tagfile.Load(args[0])
		if err != nil {
			return err
		}
		n, diff, err := roundTrip(codec, raw)
		if err != nil {
			return err
		}
		if diff >= 0 {
			logger.Warn("output differs", "file", args[0], "offset", diff)
			return fmt.Errorf("%s: %d records, output differs at byte %d", args[0], n, diff)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d bytes, identical, %s\n",
			args[0], n, len(raw), tagfile.Digest(raw))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundTripCmd)
}
