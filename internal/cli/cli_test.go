package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/format"
	"github.com/arloliu/fitview/internal/config"
	"github.com/arloliu/fitview/regression"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)

	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func decodeResponse[T any](t *testing.T, out string) (CLIResponse, T) {
	t.Helper()

	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)

	var data T
	if len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, &data))
	}

	return CLIResponse{Status: raw.Status, Error: raw.Error}, data
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "fitview", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"fit", "render", "report", "pack", "inspect"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
}

func TestExecute_InvalidFormat(t *testing.T) {
	res := execute(t, "fit", "--format", "xml")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, `invalid format "xml"`)
}

func TestExecute_UnknownCommand(t *testing.T) {
	res := execute(t, "plot")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}

func TestExecute_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  width: -5\n"), 0o600))

	res := execute(t, "fit", "--config", path)
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "chart.width")
}

func TestFit_GoldenText(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	t.Run("all series", func(t *testing.T) {
		res := execute(t, "fit")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		g.Assert(t, "fit_text", []byte(res.stdout))
	})

	t.Run("single series", func(t *testing.T) {
		res := execute(t, "fit", "--x", "terp", "--y", "busyness")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		g.Assert(t, "fit_terp_text", []byte(res.stdout))
	})
}

func TestFit_JSON(t *testing.T) {
	res := execute(t, "fit", "--format", "json", "--x", "terp,yak")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	resp, report := decodeResponse[FitReport](t, res.stdout)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "sentiment", report.Dataset)
	require.Len(t, report.Fits, 2)

	terp := report.Fits[0]
	assert.Equal(t, "terp", terp.Series)
	assert.Len(t, terp.SeriesID, 16)
	assert.InDelta(t, -42.0/73.0, terp.Slope, 1e-9)
	assert.InDelta(t, 1019.0/1460.0, terp.Intercept, 1e-9)
	assert.InDelta(t, 882.0/5767.0, terp.RSquared, 1e-9)
	assert.Equal(t, "R² = 0.15", terp.Label)

	assert.Equal(t, "linear", terp.Model)
	est, err := regression.NewEstimator(terp.Model, terp.Coefficients)
	require.NoError(t, err)
	assert.InDelta(t, terp.Slope*0.5+terp.Intercept, est.Estimate(0.5), 1e-12)

	assert.NotEqual(t, terp.SeriesID, report.Fits[1].SeriesID)
}

func TestFit_DataFile(t *testing.T) {
	res := execute(t, "fit", "--format", "json", "--data", "testdata/input/line.csv", "--y", "y")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	_, report := decodeResponse[FitReport](t, res.stdout)
	assert.Equal(t, "line", report.Dataset)
	require.Len(t, report.Fits, 1)
	assert.Equal(t, "x", report.Fits[0].Series)
	assert.InDelta(t, 2.0, report.Fits[0].Slope, 1e-12)
	assert.InDelta(t, 0.0, report.Fits[0].Intercept, 1e-12)
	assert.InDelta(t, 1.0, report.Fits[0].RSquared, 1e-12)
	assert.InDelta(t, 0.0, report.Fits[0].RMSE, 1e-12)
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		errCode string
	}{
		{name: "unknown x", args: []string{"fit", "--x", "nope"}, code: ExitCommandError, errCode: ErrCodeInvalidInput},
		{name: "unknown y", args: []string{"fit", "--y", "nope"}, code: ExitCommandError, errCode: ErrCodeInvalidInput},
		{name: "missing file", args: []string{"fit", "--data", "testdata/input/missing.yaml"}, code: ExitCommandError, errCode: ErrCodeLoadFailed},
		{name: "empty dataset", args: []string{"fit", "--data", "testdata/input/empty.yaml", "--y", "y"}, code: ExitFailure, errCode: ErrCodeFitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, append(tt.args, "--format", "json")...)
			assert.Equal(t, tt.code, res.code)

			resp, _ := decodeResponse[FitReport](t, res.stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.errCode, resp.Error.Code)
			assert.Empty(t, res.stderr, "reported errors must not be printed twice")
		})
	}
}

func TestFit_TextErrorGoesToStderr(t *testing.T) {
	res := execute(t, "fit", "--x", "nope")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Error ["+ErrCodeInvalidInput+"]")
}

func TestRender(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		res := execute(t, "render", "--x", "yak")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "<svg")
		assert.Contains(t, res.stdout, "R² = 0.35")
	})

	t.Run("file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "terp.svg")
		res := execute(t, "render", "--x", "terp", "--out", out, "--title", "terp chart", "--width", "400")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "wrote terp chart to "+out)

		svg, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(svg), "terp chart")
		assert.Contains(t, string(svg), `width="400pt"`)
	})

	t.Run("config colors", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("chart:\n  colors:\n    terp: \"#123456\"\n"), 0o600))

		res := execute(t, "render", "--config", cfgPath)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "#123456")
	})

	t.Run("invalid image format", func(t *testing.T) {
		res := execute(t, "render", "--image-format", "bmp")
		assert.Equal(t, ExitCommandError, res.code)
		assert.Contains(t, res.stderr, "invalid image format")
	})

	t.Run("unknown series", func(t *testing.T) {
		res := execute(t, "render", "--x", "nope")
		assert.Equal(t, ExitCommandError, res.code)
	})
}

func TestReport(t *testing.T) {
	ds := dataset.Sentiment()
	terpID, yakID := panelID(ds, dataset.ColumnTerp), panelID(ds, dataset.ColumnYak)

	t.Run("default tab", func(t *testing.T) {
		res := execute(t, "report", "--out", "-")
		require.Equal(t, ExitSuccess, res.code, res.stderr)

		html := res.stdout
		assert.Contains(t, html, fmt.Sprintf(`<section id="%s" class="fv-panel" role="tabpanel" data-tab-content aria-hidden="false">`, terpID))
		assert.Contains(t, html, fmt.Sprintf(`<section id="%s" class="fv-panel" role="tabpanel" data-tab-content aria-hidden="true" hidden>`, yakID))
		assert.Contains(t, html, fmt.Sprintf(`data-tab-target="%s" aria-controls="%s" aria-selected="true" disabled`, terpID, terpID))
		assert.Equal(t, 10, strings.Count(html, `<span class="fv-point" title="P`))
		assert.Equal(t, 2, strings.Count(html, "<svg"))
		assert.NotContains(t, html, "<?xml")
		assert.Contains(t, html, "R² = 0.15")
		assert.Contains(t, html, "R² = 0.35")
	})

	t.Run("selected tab", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.html")
		res := execute(t, "report", "--out", out, "--tab", "yak", "--format", "json")
		require.Equal(t, ExitSuccess, res.code, res.stderr)

		_, rr := decodeResponse[ReportResult](t, res.stdout)
		assert.Equal(t, "yak", rr.Active)
		assert.Equal(t, []string{"terp", "yak"}, rr.Series)

		html, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(html), fmt.Sprintf(`<section id="%s" class="fv-panel" role="tabpanel" data-tab-content aria-hidden="false">`, yakID))
		assert.Equal(t, rr.Bytes, len(html))
	})

	t.Run("unknown tab falls back to first", func(t *testing.T) {
		res := execute(t, "report", "--out", "-", "--tab", "nope")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, fmt.Sprintf(`aria-controls="%s" aria-selected="true" disabled`, terpID))
	})

	t.Run("duplicate series", func(t *testing.T) {
		res := execute(t, "report", "--out", "-", "--x", "terp,terp")
		assert.Equal(t, ExitCommandError, res.code)
	})
}

func TestBuildReport_TooltipRows(t *testing.T) {
	page, err := buildReport(&RootOptions{}, dataset.Sentiment(), &ReportOptions{Y: dataset.ColumnBusyness})
	require.NoError(t, err)
	require.Len(t, page.Panels, 2)

	rows := page.Panels[0].Rows
	require.Len(t, rows, 5)
	assert.Equal(t, "P1\nterp sentiment: 0.40\nBusyness: 0.40", rows[0].Tooltip)
	assert.Equal(t, "0.40", rows[0].X)
	assert.Equal(t, "sentiment", page.Title)

	anchors := page.Panels[0].Anchors
	require.Len(t, anchors, 5)
	assert.Equal(t, rows[0].Tooltip, anchors[0].Tooltip)
}

func TestBuildReport_OtherYColumn(t *testing.T) {
	ds, err := dataset.New("pairs", []string{"a", "b"}, []dataset.Row{
		{ID: "r1", Values: map[string]float64{"a": 0.1, "b": 0.9}},
		{ID: "r2", Values: map[string]float64{"a": 0.6, "b": 0.4}},
	})
	require.NoError(t, err)

	page, err := buildReport(&RootOptions{}, ds, &ReportOptions{Y: "b"})
	require.NoError(t, err)
	require.Len(t, page.Panels, 1)

	row := page.Panels[0].Rows[0]
	assert.Equal(t, "0.90", row.Y)
	assert.Equal(t, "r1\na sentiment: 0.10\nB: 0.90", row.Tooltip)
	assert.Contains(t, string(page.Panels[0].Chart), ">B<")
	assert.NotContains(t, string(page.Panels[0].Chart), "Busyness")
}

func TestBuildReport_PanelIDsAreFragmentSafe(t *testing.T) {
	cols := []string{"busyness", "late night #2", "a/b"}
	ds, err := dataset.New("odd", cols, []dataset.Row{
		{ID: "r1", Values: map[string]float64{"busyness": 0.2, "late night #2": 0.3, "a/b": 0.4}},
		{ID: "r2", Values: map[string]float64{"busyness": 0.5, "late night #2": 0.7, "a/b": 0.1}},
	})
	require.NoError(t, err)

	page, err := buildReport(&RootOptions{}, ds, &ReportOptions{Y: "busyness", Tab: "a/b"})
	require.NoError(t, err)
	require.Len(t, page.Tabs, 2)

	for _, tab := range page.Tabs {
		assert.Regexp(t, `^fv-[0-9a-f]{16}$`, tab.Target)
	}
	assert.Equal(t, "late night #2", page.Tabs[0].Series)
	assert.True(t, page.Tabs[1].Selected)
	assert.Equal(t, panelID(ds, "a/b"), page.Tabs[1].Target)
}

func TestPackCompression(t *testing.T) {
	cfg := config.Default()
	cfg.Pack.Compression = "lz4"

	ct, err := packCompression(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionLZ4, ct)

	ct, err = packCompression(cfg, "s2")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionS2, ct)

	ct, err = packCompression(nil, "")
	require.NoError(t, err)
	assert.Equal(t, format.CompressionZstd, ct)

	cfg.Pack.Compression = "gzip"
	_, err = packCompression(cfg, "")
	require.Error(t, err)
}

func TestPackInspect(t *testing.T) {
	for _, compression := range []string{"none", "zstd", "s2", "lz4"} {
		t.Run(compression, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "snap.fvb")

			res := execute(t, "pack", "--out", out, "--compression", compression, "--format", "json")
			require.Equal(t, ExitSuccess, res.code, res.stderr)

			_, pr := decodeResponse[PackResult](t, res.stdout)
			ct, err := format.ParseCompression(compression)
			require.NoError(t, err)
			assert.Equal(t, ct.String(), pr.Compression)
			assert.Equal(t, 5, pr.Rows)
			assert.Equal(t, 3, pr.Columns)

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Equal(t, int64(pr.Bytes), info.Size())

			res = execute(t, "inspect", out, "--format", "json")
			require.Equal(t, ExitSuccess, res.code, res.stderr)

			_, ir := decodeResponse[InspectResult](t, res.stdout)
			assert.Equal(t, ct.String(), ir.Compression)
			require.NotNil(t, ir.Dataset)
			assert.Equal(t, dataset.Sentiment(), ir.Dataset)
		})
	}
}

func TestInspect_Text(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.fvb")
	res := execute(t, "pack", "--out", out, "--big-endian")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "packed sentiment (5 rows, 3 columns)")

	res = execute(t, "inspect", out)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "compression: Zstd")
	assert.Contains(t, res.stdout, "byte order:  big-endian")
	assert.Contains(t, res.stdout, "dataset sentiment: 5 rows x 3 columns")
	assert.Contains(t, res.stdout, "P5")
	assert.Contains(t, res.stdout, "0.0500")
}

func TestPack_Errors(t *testing.T) {
	t.Run("missing out", func(t *testing.T) {
		res := execute(t, "pack")
		assert.Equal(t, ExitCommandError, res.code)
		assert.Contains(t, res.stderr, "out")
	})

	t.Run("bad compression", func(t *testing.T) {
		res := execute(t, "pack", "--out", filepath.Join(t.TempDir(), "x"), "--compression", "gzip")
		assert.Equal(t, ExitCommandError, res.code)
	})
}

func TestInspect_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		res := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.fvb"))
		assert.Equal(t, ExitCommandError, res.code)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.fvb")
		require.NoError(t, os.WriteFile(path, []byte("not a snapshot at all"), 0o600))

		res := execute(t, "inspect", path)
		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, ErrCodeSnapshot)
	})

	t.Run("no argument", func(t *testing.T) {
		res := execute(t, "inspect")
		assert.Equal(t, ExitCommandError, res.code)
	})
}

func TestVerboseLogging(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.fvb")
	res := execute(t, "pack", "--out", out, "--verbose")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "snapshot written")
	assert.Contains(t, res.stderr, "command=pack")
	assert.Contains(t, res.stderr, "out="+out)
}
