package cli

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitview/chart"
	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/errs"
	"github.com/arloliu/fitview/tabs"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	Data  string
	X     []string
	Y     string
	Out   string
	Tab   string
	Title string
}

// ReportResult describes a written report.
type ReportResult struct {
	Path   string   `json:"path"`
	Series []string `json:"series"`
	Active string   `json:"active"`
	Bytes  int      `json:"bytes"`
}

func (r ReportResult) String() string {
	return fmt.Sprintf("wrote report with %d tab(s) to %s, %s active (%d bytes)",
		len(r.Series), r.Path, r.Active, r.Bytes)
}

type reportTab struct {
	Target   string
	Series   string
	Selected bool
	Disabled bool
}

type reportRow struct {
	ID      string
	X       string
	Y       string
	Tooltip string
}

type reportAnchor struct {
	Left    string
	Top     string
	Tooltip string
}

type reportPanel struct {
	ID      string
	Series  string
	Hidden  bool
	Label   string
	Chart   template.HTML
	Anchors []reportAnchor
	Rows    []reportRow
}

type reportPage struct {
	Title   string
	Dataset string
	Y       string
	Tabs    []reportTab
	Panels  []reportPanel
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;color:#111827;margin:2rem}
.fv-tabs button{padding:.4rem 1rem;margin-right:.25rem}
.fv-tabs button[aria-selected="true"]{font-weight:600}
table{border-collapse:collapse;margin-top:1rem}
td,th{border:1px solid #e5e7eb;padding:.25rem .5rem;text-align:right}
.fv-chart{position:relative;display:inline-block}
.fv-chart svg{display:block}
.fv-point{position:absolute;width:12px;height:12px;margin:-6px 0 0 -6px;border-radius:50%}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Dataset <code>{{.Dataset}}</code>, y = <code>{{.Y}}</code></p>
<div class="fv-tabs" role="tablist">
{{- range .Tabs}}
<button role="tab" data-tab-target="{{.Target}}" aria-controls="{{.Target}}" aria-selected="{{.Selected}}"{{if .Disabled}} disabled aria-disabled="true"{{end}}>{{.Series}}</button>
{{- end}}
</div>
{{range .Panels}}
<section id="{{.ID}}" class="fv-panel" role="tabpanel" data-tab-content aria-hidden="{{.Hidden}}"{{if .Hidden}} hidden{{end}}>
<h2>{{.Series}} <small>{{.Label}}</small></h2>
<div class="fv-chart">
{{.Chart}}
{{- range .Anchors}}
<span class="fv-point" title="{{.Tooltip}}" style="left:{{.Left}}%;top:{{.Top}}%"></span>
{{- end}}
</div>
<table>
<thead><tr><th>id</th><th>{{.Series}}</th><th>{{$.Y}}</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr title="{{.Tooltip}}"><td>{{.ID}}</td><td>{{.X}}</td><td>{{.Y}}</td></tr>
{{- end}}
</tbody>
</table>
</section>
{{end}}
<script>
document.querySelectorAll('[data-tab-target]').forEach(function (b) {
  b.addEventListener('click', function () { location.hash = b.dataset.tabTarget; });
});
window.addEventListener('hashchange', function () {
  var id = location.hash.slice(1);
  if (!document.getElementById(id)) return;
  document.querySelectorAll('[data-tab-content]').forEach(function (p) {
    p.hidden = p.id !== id; p.setAttribute('aria-hidden', String(p.hidden));
  });
  document.querySelectorAll('[data-tab-target]').forEach(function (b) {
    var on = b.dataset.tabTarget === id;
    b.disabled = on; b.setAttribute('aria-selected', String(on));
  });
});
</script>
</body>
</html>
`))

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an HTML report with one chart tab per series",
		Long: `Write a standalone HTML page with one tab per x column. Each tab shows the
series chart, its R² and the underlying rows.

--tab selects the initially visible series; unknown names fall back to the
first series.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Data, "data", "d", "", "dataset file (.yaml, .json or .csv)")
	cmd.Flags().StringSliceVarP(&opts.X, "x", "x", nil, "x column(s), one tab each")
	cmd.Flags().StringVarP(&opts.Y, "y", "y", dataset.ColumnBusyness, "y column")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "report.html", "output file, - for stdout")
	cmd.Flags().StringVar(&opts.Tab, "tab", "", "initially active series")
	cmd.Flags().StringVar(&opts.Title, "title", "", "page title (default: dataset name)")

	return cmd
}

func runReport(rootOpts *RootOptions, opts *ReportOptions, cmd *cobra.Command) error {
	formatter := rootOpts.formatter(cmd)
	log := rootOpts.logger(cmd)

	ds, err := loadDataset(opts.Data)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load dataset", err)
	}

	page, err := buildReport(rootOpts, ds, opts)
	if err != nil {
		return renderFailure(formatter, err)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "failed to build report", err)
	}

	series := make([]string, len(page.Tabs))
	active := ""
	for i, t := range page.Tabs {
		series[i] = t.Series
		if t.Selected {
			active = t.Series
		}
	}

	if opts.Out == "" || opts.Out == "-" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeWriteFailed, "failed to write report", err)
		}

		return nil
	}

	if err := os.WriteFile(opts.Out, buf.Bytes(), 0o644); err != nil { //nolint: gosec
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write report", err)
	}
	log.Info("report written", "path", opts.Out, "tabs", len(series), "active", active)

	return formatter.Success(ReportResult{Path: opts.Out, Series: series, Active: active, Bytes: buf.Len()})
}

// panelID is the HTML id of the panel showing a series. Column names may
// contain characters that are not valid in ids or URL fragments, so the
// series ID is used instead.
func panelID(ds *dataset.Dataset, series string) string {
	return fmt.Sprintf("fv-%016x", ds.SeriesID(series))
}

func buildReport(rootOpts *RootOptions, ds *dataset.Dataset, opts *ReportOptions) (reportPage, error) {
	if !ds.HasColumn(opts.Y) {
		return reportPage{}, fmt.Errorf("%w: %q", errs.ErrUnknownColumn, opts.Y)
	}

	xs := opts.X
	if len(xs) == 0 {
		xs = slices.DeleteFunc(slices.Clone(ds.Columns), func(c string) bool { return c == opts.Y })
	}
	if len(xs) == 0 {
		return reportPage{}, fmt.Errorf("%w: no x columns besides %q", errs.ErrUnknownColumn, opts.Y)
	}

	targets := make([]string, len(xs))
	for i, x := range xs {
		targets[i] = panelID(ds, x)
	}

	panels := make([]reportPanel, 0, len(xs))
	for _, x := range xs {
		p, err := buildPanel(rootOpts, ds, x, opts.Y)
		if err != nil {
			return reportPage{}, err
		}
		panels = append(panels, p)
	}

	ids := make([]string, len(panels))
	for i, p := range panels {
		ids[i] = p.ID
	}
	set, err := tabs.New(targets, ids)
	if err != nil {
		return reportPage{}, err
	}

	preActive := ""
	if opts.Tab != "" {
		preActive = panelID(ds, opts.Tab)
	}
	set.Init("", preActive)

	st := set.State()
	page := reportPage{
		Title:   opts.Title,
		Dataset: ds.Name,
		Y:       opts.Y,
		Tabs:    make([]reportTab, len(st.Tabs)),
		Panels:  panels,
	}
	if page.Title == "" {
		page.Title = ds.Name
	}
	for i, t := range st.Tabs {
		page.Tabs[i] = reportTab{Target: t.Target, Series: xs[i], Selected: t.Selected, Disabled: t.Disabled}
	}
	for i := range page.Panels {
		ps, err := st.Panel(page.Panels[i].ID)
		if err != nil {
			return reportPage{}, err
		}
		page.Panels[i].Hidden = ps.Hidden
	}

	return page, nil
}

func buildPanel(rootOpts *RootOptions, ds *dataset.Dataset, x, y string) (reportPanel, error) {
	c, err := chart.Build(ds, x, chartOptions(rootOpts, x, y, nil)...)
	if err != nil {
		return reportPanel{}, err
	}

	var svg bytes.Buffer
	if _, err := c.WriteTo(&svg); err != nil {
		return reportPanel{}, err
	}

	anchors, err := c.Anchors()
	if err != nil {
		return reportPanel{}, err
	}

	panel := reportPanel{
		ID:      panelID(ds, x),
		Series:  x,
		Label:   c.Fit.Label(),
		Chart:   inlineSVG(svg.String()),
		Anchors: make([]reportAnchor, len(anchors)),
		Rows:    make([]reportRow, len(ds.Rows)),
	}
	for i, a := range anchors {
		panel.Anchors[i] = reportAnchor{
			Left:    strconv.FormatFloat(a.Left, 'f', 2, 64),
			Top:     strconv.FormatFloat(a.Top, 'f', 2, 64),
			Tooltip: a.Tooltip,
		}
	}
	for i, r := range ds.Rows {
		panel.Rows[i] = reportRow{
			ID:      r.ID,
			X:       fmt.Sprintf("%.2f", r.Values[x]),
			Y:       fmt.Sprintf("%.2f", r.Values[y]),
			Tooltip: anchors[i].Tooltip,
		}
	}

	return panel, nil
}

// inlineSVG drops the XML prolog so the document can be embedded in HTML.
func inlineSVG(doc string) template.HTML {
	if i := strings.Index(doc, "<svg"); i >= 0 {
		doc = doc[i:]
	}

	return template.HTML(doc) //nolint: gosec
}
