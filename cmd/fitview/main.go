// Package main provides the CLI entrypoint for fitview.
//
// fitview fits least-squares lines to small two-column datasets and renders
// them as scatter charts:
//   - fit: report slope, intercept and R² per series
//   - render: write one chart as SVG, PNG, PDF or EPS
//   - report: write a tabbed HTML page with every chart
//   - pack / inspect: encode and decode binary dataset snapshots
package main

import (
	"os"

	"github.com/arloliu/fitview/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
