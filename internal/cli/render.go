package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitview/chart"
	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/errs"
)

// ImageFormats lists the formats accepted by --image-format.
var ImageFormats = []string{"svg", "png", "pdf", "eps"}

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	Data        string
	X           string
	Y           string
	Out         string
	Title       string
	Width       float64
	Height      float64
	ImageFormat string
}

// RenderResult describes a written chart.
type RenderResult struct {
	Series string `json:"series"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
}

func (r RenderResult) String() string {
	return fmt.Sprintf("wrote %s chart to %s (%d bytes)", r.Series, r.Path, r.Bytes)
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a series as a scatter chart with its fit line",
		Long: `Render one x column against the y column as a scatter chart with the
least-squares line drawn from x = 0 to x = 1 and the R² value in the corner.

With --out - (the default) the image is written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "dataset file (.yaml, .json or .csv)")
	cmd.Flags().StringVarP(&opts.X, "x", "x", dataset.ColumnTerp, "x column")
	cmd.Flags().StringVarP(&opts.Y, "y", "y", dataset.ColumnBusyness, "y column")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "chart width in points (default from config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "chart height in points (default from config)")
	cmd.Flags().StringVar(&opts.ImageFormat, "image-format", chart.DefaultFormat, "image format (svg|png|pdf|eps)")

	return cmd
}

func runRender(rootOpts *RootOptions, opts *RenderOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.logger(cmd).WithSeries(opts.X)

	if !slices.Contains(ImageFormats, opts.ImageFormat) {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput,
			fmt.Sprintf("invalid image format %q: must be one of %v", opts.ImageFormat, ImageFormats), nil)
	}

	ds, err := loadDataset(opts.Data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load dataset", err)
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, ds, opts.X, chartOptions(rootOpts, opts.X, opts.Y, opts)...); err != nil {
		return renderFailure(formatter, err)
	}

	if opts.Out == "" || opts.Out == "-" {
		// Image bytes own stdout; nothing else is printed.
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeWriteFailed, "failed to write chart", err)
		}

		return nil
	}

	if err := os.WriteFile(opts.Out, buf.Bytes(), 0o644); err != nil { //nolint: gosec
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write chart", err)
	}
	log.Info("chart written", "path", opts.Out, "bytes", buf.Len())

	return formatter.Success(RenderResult{Series: opts.X, Path: opts.Out, Bytes: buf.Len()})
}

// chartOptions merges config defaults with command flags.
func chartOptions(rootOpts *RootOptions, series, y string, opts *RenderOptions) []chart.Option {
	width, height := chart.DefaultWidth, chart.DefaultHeight
	palette := chart.DefaultPalette()
	if rootOpts.Config != nil {
		width, height = rootOpts.Config.Chart.Width, rootOpts.Config.Chart.Height
		palette = rootOpts.Config.Palette()
	}

	title := ""
	imageFormat := chart.DefaultFormat
	if opts != nil {
		if opts.Width > 0 {
			width = opts.Width
		}
		if opts.Height > 0 {
			height = opts.Height
		}
		title = opts.Title
		imageFormat = opts.ImageFormat
	}

	return []chart.Option{
		chart.WithSize(width, height),
		chart.WithColor(palette.Hex(series)),
		chart.WithTitle(title),
		chart.WithYColumn(y),
		chart.WithFormat(imageFormat),
	}
}

func renderFailure(formatter *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, errs.ErrEmptyPointSet):
		return formatter.Fail(ExitFailure, ErrCodeFitFailed, "cannot fit an empty dataset", err)
	case errors.Is(err, errs.ErrUnknownColumn),
		errors.Is(err, errs.ErrInvalidSize),
		errors.Is(err, errs.ErrInvalidColor),
		errors.Is(err, errs.ErrDuplicateTab):
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid chart request", err)
	default:
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to render chart", err)
	}
}
