// Package population aggregates census population rows into one count table
// per output area.
//
// Input rows come from the NOMIS bulk CSV export: one row per
// (area classification, person type) cell of an output area, plus rows for
// the area size and population density.
package population

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names read from the CSV header
const (
	ColGeographyName  = "GEOGRAPHY_NAME"
	ColGeographyType  = "GEOGRAPHY_TYPE"
	ColRuralUrbanName = "RURAL_URBAN_NAME"
	ColCellName       = "CELL_NAME"
	ColMeasuresName   = "MEASURES_NAME"
	ColObsValue       = "OBS_VALUE"
	ColObsStatus      = "OBS_STATUS"
	ColRecordOffset   = "RECORD_OFFSET"
	ColRecordCount    = "RECORD_COUNT"
)

var requiredColumns = []string{
	ColGeographyName,
	ColGeographyType,
	ColRuralUrbanName,
	ColCellName,
	ColMeasuresName,
	ColObsValue,
	ColObsStatus,
	ColRecordOffset,
	ColRecordCount,
}

// Special cells and the measure that carries counts
const (
	MeasureValue = "Value"
	CellArea     = "Area (Hectares)"
	CellDensity  = "Density (number of persons per hectare)"
)

// Row is one line of the export
type Row struct {
	GeographyName  string
	GeographyType  string
	RuralUrbanName string
	CellName       string
	MeasuresName   string
	ObsValue       string
	ObsStatus      string
	RecordOffset   uint32
	RecordCount    uint32
}

// ParseError describes a row set that cannot be aggregated
type ParseError struct {
	Kind   string // the offending value
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %q", e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadRows reads every row of a CSV export. Columns are matched by header
// name; extra columns are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %s", col)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(col string) string {
			if i := idx[col]; i < len(rec) {
				return rec[i]
			}
			return ""
		}
		offset, err := strconv.ParseUint(get(ColRecordOffset), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColRecordOffset, err)
		}
		count, err := strconv.ParseUint(get(ColRecordCount), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColRecordCount, err)
		}

		rows = append(rows, Row{
			GeographyName:  get(ColGeographyName),
			GeographyType:  get(ColGeographyType),
			RuralUrbanName: get(ColRuralUrbanName),
			CellName:       get(ColCellName),
			MeasuresName:   get(ColMeasuresName),
			ObsValue:       get(ColObsValue),
			ObsStatus:      get(ColObsStatus),
			RecordOffset:   uint32(offset),
			RecordCount:    uint32(count),
		})
	}
	return rows, nil
}

// Record is the aggregated table of one output area
type Record struct {
	GeographyCode string
	GeographyType string
	AreaSize      float32 // hectares
	Density       float32 // persons per hectare
	Counts        [numAreaClassifications][numPersonTypes]uint16
}

// Count returns the count for one cell of the table
func (r *Record) Count(a AreaClassification, p PersonType) uint16 {
	return r.Counts[a][p]
}

// Aggregate folds the rows of one output area into a Record.
//
// All rows must share geography code and type. Only rows measuring "Value"
// contribute. The area and density rows set AreaSize and Density (0 when the
// value does not parse); every other row sets one count.
func Aggregate(rows []Row) (*Record, error) {
	if len(rows) == 0 {
		return nil, &ParseError{Kind: "rows", Detail: "need at least one row to build a record"}
	}

	rec := &Record{
		GeographyCode: rows[0].GeographyName,
		GeographyType: rows[0].GeographyType,
	}
	for _, row := range rows {
		if row.GeographyName != rec.GeographyCode {
			return nil, &ParseError{Kind: row.GeographyName,
				Detail: fmt.Sprintf("mismatched geography codes: %s and %s", rec.GeographyCode, row.GeographyName)}
		}
		if row.GeographyType != rec.GeographyType {
			return nil, &ParseError{Kind: row.GeographyType,
				Detail: fmt.Sprintf("mismatched geography types: %s and %s", rec.GeographyType, row.GeographyType)}
		}
		if row.MeasuresName != MeasureValue {
			continue
		}

		switch row.CellName {
		case CellArea:
			rec.AreaSize = parseFloat(row.ObsValue)
		case CellDensity:
			rec.Density = parseFloat(row.ObsValue)
		default:
			class, err := ParseAreaClassification(row.RuralUrbanName)
			if err != nil {
				return nil, err
			}
			person, err := ParsePersonType(row.CellName)
			if err != nil {
				return nil, err
			}
			n, err := strconv.ParseUint(strings.TrimSpace(row.ObsValue), 10, 16)
			if err != nil {
				return nil, &ParseError{Kind: row.ObsValue, Detail: "count", Err: err}
			}
			rec.Counts[class][person] = uint16(n)
		}
	}
	return rec, nil
}

func parseFloat(s string) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// GroupByGeography splits rows by geography code, in first-seen order.
func GroupByGeography(rows []Row) [][]Row {
	var groups [][]Row
	pos := make(map[string]int)
	for _, row := range rows {
		i, ok := pos[row.GeographyName]
		if !ok {
			i = len(groups)
			pos[row.GeographyName] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}
	return groups
}
