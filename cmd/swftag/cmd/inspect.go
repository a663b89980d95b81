package cmd

import (
	"fmt"
	"io"

	"github.com/rawbytedev/swfcodec"
	"github.com/rawbytedev/swfcodec/pkg/coder"
	"github.com/rawbytedev/swfcodec/pkg/tag"
	"github.com/rawbytedev/swfcodec/pkg/tagfile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var format string

// entry is the summary printed for one record.
type entry struct {
	Offset int    `yaml:"offset"`
	Code   uint16 `yaml:"code"`
	Type   string `yaml:"type"`
	Length int    `yaml:"length"`
}

func inspect(w io.Writer, c *swfcodec.Codec, raw []byte, format string) error {
	var enc *yaml.Encoder
	switch format {
	case "text":
	case "yaml":
		enc = yaml.NewEncoder(w)
		defer enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return c.Walk(raw, func(_ coder.Decodable, h coder.Header) error {
		e := entry{Offset: h.Offset(), Code: h.Type, Type: tag.TypeName(h.Type), Length: h.Length}
		if enc != nil {
			return enc.Encode(e)
		}
		_, err := fmt.Fprintf(w, "%8d  %-14s %4d  len=%d\n", e.Offset, e.Type, e.Code, e.Length)
		return err
	})
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List the records in a file",
	Long: `List the offset, type and body length of every record in a file.

Example:
  swftag inspect movie.tags.zst --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := tagfile.Load(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), codec, raw, format)
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	rootCmd.AddCommand(inspectCmd)
}
