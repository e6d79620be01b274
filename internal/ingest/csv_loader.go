// Package ingest reads the ANFR antenna and support-location exports and
// merges them into the typed point set the analysis core consumes. All
// parsing and validation happens here; no string-typed coordinate ever
// crosses into the engine.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// The ANFR exports are semicolon-delimited and Latin-1 encoded. The support
// number column is spelled "Numéro de support" in the antenna table and
// "Numéro du support" in the location table; both spellings are accepted on
// either file.
const (
	colSupportDe = "Numéro de support"
	colSupportDu = "Numéro du support"
	colOperator  = "Exploitant"
	colLongitude = "Longitude"
	colLatitude  = "Latitude"
)

// AntennaRecord is one row of the antenna table: which operator runs
// equipment on which support.
type AntennaRecord struct {
	SupportID string
	Operator  string
}

// SupportRecord is one row of the location table: where a support stands.
type SupportRecord struct {
	SupportID string
	Longitude float64
	Latitude  float64
}

// ParseCoordinate parses a decimal-degree value, tolerating the decimal
// comma the French exports use ("2,3522" == 2.3522).
func ParseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable coordinate %q: %w", s, err)
	}
	return v, nil
}

// newLatin1CSVReader wraps a raw export stream in a Latin-1 decoder and a
// semicolon CSV reader.
func newLatin1CSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	// Some exports carry ragged trailing columns.
	cr.FieldsPerRecord = -1
	return cr
}

// columnIndex finds a named column in the header row, trying each candidate
// name in order.
func columnIndex(header []string, names ...string) (int, error) {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("none of the columns %v found in header %v", names, header)
}

// LoadAntennas reads the antenna table: one record per (support, operator)
// row. Rows with a blank support number or operator are dropped.
func LoadAntennas(path string) ([]AntennaRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open antennas file: %w", err)
	}
	defer f.Close()

	cr := newLatin1CSVReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read antennas header: %w", err)
	}

	supportCol, err := columnIndex(header, colSupportDe, colSupportDu)
	if err != nil {
		return nil, err
	}
	operatorCol, err := columnIndex(header, colOperator)
	if err != nil {
		return nil, err
	}

	var records []AntennaRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read antennas row: %w", err)
		}
		if supportCol >= len(row) || operatorCol >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[supportCol])
		op := strings.TrimSpace(row[operatorCol])
		if id == "" || op == "" {
			continue
		}
		records = append(records, AntennaRecord{SupportID: id, Operator: op})
	}
	return records, nil
}

// LoadSupports reads the location table. Rows whose coordinates cannot be
// parsed are dropped and counted; the caller decides whether the drop rate
// is worth surfacing.
func LoadSupports(path string) (records []SupportRecord, dropped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open supports file: %w", err)
	}
	defer f.Close()

	cr := newLatin1CSVReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read supports header: %w", err)
	}

	supportCol, err := columnIndex(header, colSupportDu, colSupportDe)
	if err != nil {
		return nil, 0, err
	}
	lonCol, err := columnIndex(header, colLongitude)
	if err != nil {
		return nil, 0, err
	}
	latCol, err := columnIndex(header, colLatitude)
	if err != nil {
		return nil, 0, err
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read supports row: %w", err)
		}
		if supportCol >= len(row) || lonCol >= len(row) || latCol >= len(row) {
			dropped++
			continue
		}
		id := strings.TrimSpace(row[supportCol])
		if id == "" {
			dropped++
			continue
		}
		lon, lonErr := ParseCoordinate(row[lonCol])
		lat, latErr := ParseCoordinate(row[latCol])
		if lonErr != nil || latErr != nil {
			dropped++
			continue
		}
		records = append(records, SupportRecord{SupportID: id, Longitude: lon, Latitude: lat})
	}
	return records, dropped, nil
}
