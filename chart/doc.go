// Package chart renders a dataset series as a scatter plot with its
// least-squares fit line and an R² annotation.
//
// The package never computes the regression itself beyond calling
// regression.Fit; it only maps a FitResult and the raw points onto a fixed
// unit domain. Both axes span [0, 1] and are labelled in percent.
//
// # Layout
//
// Charts leave a fixed margin (top 16, right 20, bottom 48, left 56) around
// the plot, whose area never shrinks below 120 points on either axis; the
// canvas grows instead. Build returns a Chart whose Frame maps the unit data
// square onto canvas points, and whose Anchors place one tooltip per row over
// the drawn points.
//
// # Usage
//
//	var buf bytes.Buffer
//	err := chart.Render(&buf, dataset.Sentiment(), dataset.ColumnTerp,
//	    chart.WithSize(640, 352),
//	    chart.WithTitle("terp vs busyness"),
//	)
package chart
