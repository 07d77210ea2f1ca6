// Package regattacsv maps regatta result CSV files onto domain records.
// Pure function: reader in, records out. No database dependencies.
package regattacsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// SkippedRow records a data row that could not become a record. Line is the
// 1-based line number in the file.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result is the outcome of parsing one file.
type Result struct {
	Records []domain.ResultRecord
	Skipped []SkippedRow
	Rows    int
}

// ErrNoHeader is returned for an empty file.
var ErrNoHeader = errors.New("csv has no header row")

// Parse reads a CSV with a header row. Rows without a regatta name or skipper
// are skipped and reported; an empty club becomes domain.UnknownClub.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := newColumns(header)

	res := &Result{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}
		res.Rows++

		rec, reason := cols.record(row)
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

type columns struct {
	index map[string][]int
}

func newColumns(header []string) columns {
	c := columns{index: make(map[string][]int, len(header))}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		c.index[key] = append(c.index[key], i)
	}
	return c
}

// value returns the first non-empty cell among the synonym columns.
func (c columns) value(row []string, synonyms []string) string {
	for _, name := range synonyms {
		for _, i := range c.index[name] {
			if i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func (c columns) record(row []string) (domain.ResultRecord, string) {
	rec := domain.ResultRecord{
		RegattaName: c.value(row, regattaNameHeaders),
		RegattaDate: ParseDate(c.value(row, regattaDateHeaders)),
		Category:    c.value(row, categoryHeaders),
		Position:    c.value(row, positionHeaders),
		SailNumber:  c.value(row, sailNumberHeaders),
		BoatName:    c.value(row, boatNameHeaders),
		Skipper:     c.value(row, skipperHeaders),
		YachtClub:   domain.NormalizeClub(c.value(row, yachtClubHeaders)),
		Results:     c.value(row, resultsHeaders),
		TotalPoints: parsePoints(c.value(row, totalPointsHeaders)),
	}

	switch {
	case rec.RegattaName == "" && rec.Skipper == "":
		return rec, "missing regatta name and skipper"
	case rec.RegattaName == "":
		return rec, "missing regatta name"
	case rec.Skipper == "":
		return rec, "missing skipper"
	}
	return rec, ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parsePoints(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// TwoDigitYearPivot splits two-digit years: below it means 20xx, otherwise 19xx.
const TwoDigitYearPivot = 50

// ParseDate accepts ISO dates, common written forms and month/day/year with
// '/', '-' or '.' separators. Unparseable input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' || r == '.' })
	if len(parts) != 3 {
		return nil
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if year < 100 {
		if year < TwoDigitYearPivot {
			year += 2000
		} else {
			year += 1900
		}
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}
	return &d
}
