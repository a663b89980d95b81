package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/rawbytedev/swfcodec"
	"github.com/spf13/cobra"
)

var (
	version     int
	verbose     bool
	keepUnknown bool
	memProfile  string

	logger *slog.Logger
	codec  *swfcodec.Codec
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swftag",
	Short: "Inspect and rewrite SWF record streams",
	Long: `swftag reads files holding a sequence of SWF tagged records,
compressed with zstd or lz4 when the name ends in .zst or .lz4.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		codec = newCodec()
		if memProfile != "" {
			runtime.MemProfileRate = 1
		}
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if memProfile == "" {
			return nil
		}
		return writeHeapProfile(memProfile)
	},
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memprofile: %w", err)
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func newCodec() *swfcodec.Codec {
	return swfcodec.NewCodec(swfcodec.Options{
		Version:     version,
		Logger:      logger,
		KeepUnknown: keepUnknown,
	})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&version, "swf-version", 0, "format version of the movie (0 for the latest)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every record")
	rootCmd.PersistentFlags().StringVar(&memProfile, "memprofile", "", "write a heap profile to this file")
	rootCmd.PersistentFlags().BoolVar(&keepUnknown, "keep-unknown", true, "keep records of unsupported types")
}
