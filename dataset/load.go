package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/fitview/errs"
)

// Kind identifies a text input format.
type Kind string

const (
	KindYAML Kind = "yaml"
	KindJSON Kind = "json"
	KindCSV  Kind = "csv"
)

// KindFromPath infers the input kind from a file extension.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".json":
		return KindJSON, nil
	case ".csv":
		return KindCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedInput, path)
	}
}

// LoadFile reads a dataset from a YAML, JSON or CSV file. The file's base name
// without extension is used as the dataset name unless the document sets one.
func LoadFile(path string) (*Dataset, error) {
	kind, err := KindFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return Load(f, kind, name)
}

// Load decodes a dataset of the given kind from r.
//
// YAML and JSON documents use the Dataset field layout:
//
//	name: sentiment
//	columns: [busyness, terp]
//	rows:
//	  - id: P1
//	    values: {busyness: 0.40, terp: 0.40}
//
// When columns is omitted, the columns of the first row are used in sorted
// order. CSV input needs a header row whose first cell is "id".
func Load(r io.Reader, kind Kind, name string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch kind {
	case KindYAML:
		ds = &Dataset{}
		if err = yaml.NewDecoder(r).Decode(ds); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode yaml dataset: %w", err)
		}
	case KindJSON:
		ds = &Dataset{}
		if err = json.NewDecoder(r).Decode(ds); err != nil {
			return nil, fmt.Errorf("failed to decode json dataset: %w", err)
		}
	case KindCSV:
		if ds, err = readCSV(r); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedInput, kind)
	}

	if ds.Name == "" {
		ds.Name = name
	}
	if len(ds.Columns) == 0 && len(ds.Rows) > 0 {
		ds.Columns = sortedKeys(ds.Rows[0].Values)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

func readCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: csv has no header", errs.ErrUnsupportedInput)
	}

	header := records[0]
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "id") {
		return nil, fmt.Errorf("%w: csv header must start with \"id\"", errs.ErrUnsupportedInput)
	}

	columns := make([]string, len(header)-1)
	for i, h := range header[1:] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for line, rec := range records[1:] {
		row := Row{ID: strings.TrimSpace(rec[0]), Values: make(map[string]float64, len(columns))}
		for i, col := range columns {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d column %q: %w", line+2, col, err)
			}
			row.Values[col] = v
		}
		rows = append(rows, row)
	}

	return &Dataset{Columns: columns, Rows: rows}, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
