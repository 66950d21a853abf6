// Package tablename classifies 2011 census bulk-download data files by the
// codes embedded in their names, e.g. "QS101EW" + "DATA.CSV".
//
// Data source: https://www.nomisweb.co.uk/census/2011
package tablename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Name length limits and marker of a census data file
const (
	minNameLen = 16
	maxNameLen = 20
	dataMarker = "DATA.CSV"
)

var tableTypes = map[string]string{
	"QS": "Quick Statistics",
	"KS": "Key Statistics",
	"DC": "Detailed Characteristics",
	"LC": "Local Characteristics",
	"WD": "Workday Population",
	"WP": "Workplace Population Tables",
	"CT": "Commissioned Tables",
}

var countries = map[string]string{
	"EW": "England & Wales",
	"WA": "Wales",
}

var geographies = map[string]string{
	"r":  "Region",
	"la": "Merged Wards",
	"ls": "Lower Level Super Output Area",
}

// ErrCodeLength indicates a code with the wrong number of characters
type ErrCodeLength struct {
	Kind string
	Code string
}

func (e *ErrCodeLength) Error() string {
	return fmt.Sprintf("%s code %q has the wrong number of characters (%d)", e.Kind, e.Code, len(e.Code))
}

// ErrUnknownCode indicates a code missing from the lookup table
type ErrUnknownCode struct {
	Kind string
	Code string
}

func (e *ErrUnknownCode) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Kind, e.Code)
}

// ErrNotDataFile indicates a file name that is not a census data file
type ErrNotDataFile struct {
	Name   string
	Reason string
}

func (e *ErrNotDataFile) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// TableType returns the table family for a two-character code.
func TableType(code string) (string, error) {
	if len(code) != 2 {
		return "", &ErrCodeLength{Kind: "table", Code: code}
	}
	if name, ok := tableTypes[code]; ok {
		return name, nil
	}
	return "", &ErrUnknownCode{Kind: "table", Code: code}
}

// Country returns the country for a two-character code.
func Country(code string) (string, error) {
	if len(code) != 2 {
		return "", &ErrCodeLength{Kind: "country", Code: code}
	}
	if name, ok := countries[code]; ok {
		return name, nil
	}
	return "", &ErrUnknownCode{Kind: "country", Code: code}
}

// Geography returns the geography level for a one or two character code.
// Unknown codes of valid length map to "".
func Geography(code string) (string, error) {
	if len(code) != 1 && len(code) != 2 {
		return "", &ErrCodeLength{Kind: "geography", Code: code}
	}
	return geographies[code], nil
}

// Describe returns a readable description of a census data file:
//
//	"<table> - <number> - <country> - <geography> - <file name>"
//
// Only the base name of path is used. It must be 16 to 20 bytes long and
// contain "DATA.CSV". Country and geography are both read from bytes 6-7 of
// the name.
func Describe(path string) (string, error) {
	name := path[strings.LastIndex(filepath.ToSlash(path), "/")+1:]
	if len(name) < minNameLen || len(name) > maxNameLen {
		return "", &ErrNotDataFile{Name: name, Reason: fmt.Sprintf("name length %d outside %d-%d", len(name), minNameLen, maxNameLen)}
	}
	if !strings.Contains(name, dataMarker) {
		return "", &ErrNotDataFile{Name: name, Reason: "not a " + dataMarker + " file"}
	}

	table, err := TableType(name[0:2])
	if err != nil {
		return "", err
	}
	country, err := Country(name[6:8])
	if err != nil {
		return "", err
	}
	geography, err := Geography(name[6:8])
	if err != nil {
		return "", err
	}

	return strings.Join([]string{table, name[2:6], country, geography, name}, " - "), nil
}

// Entry is one discovered data file
type Entry struct {
	Path        string
	Description string
	Err         error
}

// Discover walks root and describes every file whose name contains DATA.CSV.
//
// Files that cannot be described are returned with Err set.
func Discover(root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.Contains(info.Name(), dataMarker) {
			return nil
		}
		desc, derr := Describe(path)
		entries = append(entries, Entry{Path: path, Description: desc, Err: derr})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return entries, nil
}
