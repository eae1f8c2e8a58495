// Package catalog reads the facility catalog from CSV or XLSX files.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saunarec/internal/domain"
	domcat "github.com/kailas-cloud/saunarec/internal/domain/catalog"
)

// Columns maps catalog attributes to header names.
type Columns struct {
	Name        string
	Location    string
	Price       string
	BeginnerTip string
	RefreshType string
	SaunaTemp   string
	WaterTemp   string
}

// DefaultColumns returns the header names of the national sauna sheet.
func DefaultColumns() Columns {
	return Columns{
		Name:        "施設名",
		Location:    "場所",
		Price:       "料金",
		BeginnerTip: "初心者におすすめのポイント",
		RefreshType: "スッキリの種類",
		SaunaTemp:   "サウナの温度",
		WaterTemp:   "水風呂の温度",
	}
}

// Result is a loaded corpus with load statistics.
type Result struct {
	Documents []domcat.Document
	Rows      int
	Dropped   int
}

// Loader reads and normalizes catalog files.
type Loader struct {
	columns Columns
	sheet   string
	logger  *zap.Logger
}

// New creates a Loader. Zero-value column names fall back to DefaultColumns.
func New(columns Columns, logger *zap.Logger) *Loader {
	def := DefaultColumns()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&columns.Name, def.Name)
	fill(&columns.Location, def.Location)
	fill(&columns.Price, def.Price)
	fill(&columns.BeginnerTip, def.BeginnerTip)
	fill(&columns.RefreshType, def.RefreshType)
	fill(&columns.SaunaTemp, def.SaunaTemp)
	fill(&columns.WaterTemp, def.WaterTemp)
	return &Loader{columns: columns, logger: logger}
}

// WithSheet selects the XLSX sheet to read. Empty means the first sheet.
func (l *Loader) WithSheet(sheet string) *Loader {
	l.sheet = sheet
	return l
}

// Load reads path (.csv or .xlsx) and returns the surviving documents with
// contiguous ids in input order. Any read failure is ErrDataUnavailable.
func (l *Loader) Load(path string) (Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path, l.sheet)
	default:
		return Result{}, fmt.Errorf("%w: unsupported catalog format %q", domain.ErrDataUnavailable, path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}

	res, err := l.normalize(rows)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, path, err)
	}

	l.logger.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("rows", res.Rows),
		zap.Int("documents", len(res.Documents)),
		zap.Int("dropped", res.Dropped),
	)
	return res, nil
}

// normalize maps the header row and converts records to documents.
func (l *Loader) normalize(rows [][]string) (Result, error) {
	if len(rows) == 0 {
		return Result{}, errors.New("missing header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	col := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return i, nil
	}

	var (
		idx [7]int
		err error
	)
	names := [7]string{
		l.columns.Name, l.columns.Location, l.columns.Price,
		l.columns.BeginnerTip, l.columns.RefreshType, l.columns.SaunaTemp, l.columns.WaterTemp,
	}
	for i, n := range names {
		if idx[i], err = col(n); err != nil {
			return Result{}, err
		}
	}

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	res := Result{Rows: len(rows) - 1}
	for _, row := range rows[1:] {
		attrs := domcat.Attributes{
			Name:        cell(row, idx[0]),
			Location:    cell(row, idx[1]),
			Price:       cell(row, idx[2]),
			BeginnerTip: cell(row, idx[3]),
			RefreshType: cell(row, idx[4]),
			SaunaTemp:   cell(row, idx[5]),
			WaterTemp:   cell(row, idx[6]),
		}
		if !attrs.Complete() {
			res.Dropped++
			continue
		}
		res.Documents = append(res.Documents, domcat.New(len(res.Documents), attrs))
	}
	return res, nil
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseCSV(data)
}

func parseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
