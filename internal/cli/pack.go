package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitview/compress"
	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/format"
	"github.com/arloliu/fitview/internal/config"
)

// PackOptions holds flags for the pack command.
type PackOptions struct {
	Data        string
	Out         string
	Compression string
	BigEndian   bool
}

// PackResult describes a written snapshot.
type PackResult struct {
	Dataset     string  `json:"dataset"`
	Path        string  `json:"path"`
	Compression string  `json:"compression"`
	Rows        int     `json:"rows"`
	Columns     int     `json:"columns"`
	Bytes       int     `json:"bytes"`
	Ratio       float64 `json:"ratio"`
}

func (r PackResult) String() string {
	return fmt.Sprintf("packed %s (%d rows, %d columns) to %s: %d bytes, %s, ratio %.2f",
		r.Dataset, r.Rows, r.Columns, r.Path, r.Bytes, r.Compression, r.Ratio)
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PackOptions{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Encode a dataset into a compact binary snapshot",
		Long: `Encode a dataset into a checksummed binary snapshot.

The payload codec defaults to pack.compression from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPack(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "dataset file (.yaml, .json or .csv)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "snapshot file to write (required)")
	cmd.Flags().StringVar(&opts.Compression, "compression", "", "payload codec (none|zstd|s2|lz4)")
	cmd.Flags().BoolVar(&opts.BigEndian, "big-endian", false, "store fields in big-endian order")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runPack(rootOpts *RootOptions, opts *PackOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.logger(cmd).With("out", opts.Out)

	ct, err := packCompression(rootOpts.Config, opts.Compression)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid compression", err)
	}

	ds, err := loadDataset(opts.Data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load dataset", err)
	}

	snapshotOpts := []dataset.SnapshotOption{dataset.WithCompression(ct)}
	if opts.BigEndian {
		snapshotOpts = append(snapshotOpts, dataset.WithBigEndian())
	}

	data, err := dataset.Encode(ds, snapshotOpts...)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeSnapshot, "failed to encode snapshot", err)
	}

	if err := os.WriteFile(opts.Out, data, 0o644); err != nil { //nolint: gosec
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write snapshot", err)
	}

	info, err := dataset.Inspect(data)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeSnapshot, "failed to read back snapshot", err)
	}
	log.Debug("snapshot written", "bytes", len(data), "compression", ct.String())

	return formatter.Success(PackResult{
		Dataset:     ds.Name,
		Path:        opts.Out,
		Compression: ct.String(),
		Rows:        ds.Len(),
		Columns:     len(ds.Columns),
		Bytes:       len(data),
		Ratio:       compress.Ratio(info.RawPayloadSize, info.PayloadLength),
	})
}

// packCompression resolves --compression, falling back to pack.compression
// from the config and then to zstd.
func packCompression(cfg *config.Config, flag string) (format.CompressionType, error) {
	switch {
	case flag != "":
		return format.ParseCompression(flag)
	case cfg != nil:
		return cfg.Compression()
	default:
		return format.CompressionZstd, nil
	}
}
