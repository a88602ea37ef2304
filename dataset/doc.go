// Package dataset holds the tabular rows that fitview series are drawn from.
//
// A Dataset is a named table of rows. Every row has an ID and one float64
// value per column. Any two columns can be paired into a regression.PointSet:
//
//	ds := dataset.Sentiment()
//	points, err := ds.Series("terp", "busyness")
//	fit, err := regression.Fit(points)
//
// Datasets can be loaded from YAML, JSON or CSV files (see LoadFile) and
// stored as compact binary snapshots (see Encode and Decode).
//
// # Snapshot Layout
//
// A snapshot is a fixed 16-byte header, a payload that may be compressed, and
// a trailing 8-byte xxHash64 checksum over header and payload:
//
//	[0:2]   options: magic (bits 4-15) and flags (bits 0-3), always little-endian
//	[2]     compression type
//	[3]     reserved
//	[4:6]   column count
//	[6:8]   row count
//	[8:12]  stored payload length
//	[12:16] raw payload length
//
// The raw payload holds the dataset name, the column names, the row IDs and
// then each column as rowCount float64 values.
package dataset
