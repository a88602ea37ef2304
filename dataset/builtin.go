package dataset

// Column names of the built-in sentiment dataset.
const (
	ColumnBusyness = "busyness"
	ColumnTerp     = "terp"
	ColumnYak      = "yak"
)

// SentimentSeries lists the sentiment columns that are plotted against busyness.
var SentimentSeries = []string{ColumnTerp, ColumnYak}

// Sentiment returns the built-in five-row dataset relating two sentiment
// scores to busyness. Each call returns a fresh copy.
func Sentiment() *Dataset {
	row := func(id string, busyness, terp, yak float64) Row {
		return Row{ID: id, Values: map[string]float64{
			ColumnBusyness: busyness,
			ColumnTerp:     terp,
			ColumnYak:      yak,
		}}
	}

	return &Dataset{
		Name:    "sentiment",
		Columns: []string{ColumnBusyness, ColumnTerp, ColumnYak},
		Rows: []Row{
			row("P1", 0.40, 0.40, 0.70),
			row("P2", 0.60, 0.50, 0.85),
			row("P3", 0.40, 0.55, 0.45),
			row("P4", 0.40, 0.75, 0.60),
			row("P5", 0.05, 0.65, 0.55),
		},
	}
}
