package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-lab/internal/models"
)

// Football columns
const (
	ColLeague   = "Div"
	ColDate     = "Date"
	ColHomeTeam = "HomeTeam"
	ColAwayTeam = "AwayTeam"
	ColResult   = "FTR"
	ColOddsHome = "B365H"
	ColOddsDraw = "B365D"
	ColOddsAway = "B365A"
)

// Tennis columns
const (
	ColTournament = "Tournament"
	ColWinner     = "Winner"
	ColLoser      = "Loser"
	ColOddsWinner = "B365W"
	ColOddsLoser  = "B365L"
)

const maxReportedIssues = 50

var (
	footballRequired = []string{ColLeague, ColResult, ColOddsHome, ColOddsDraw, ColOddsAway}
	tennisRequired   = []string{ColOddsWinner, ColOddsLoser}

	dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02", "1/2/2006"}
)

// RowIssue describes a row excluded from a dataset
type RowIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseReport summarises a CSV parse
type ParseReport struct {
	Rows     int        `json:"rows"`
	Accepted int        `json:"accepted"`
	Skipped  int        `json:"skipped"`
	Issues   []RowIssue `json:"issues,omitempty"`
}

func (r *ParseReport) skip(line int, err error) {
	r.Skipped++
	if len(r.Issues) < maxReportedIssues {
		r.Issues = append(r.Issues, RowIssue{Line: line, Reason: err.Error()})
	}
}

// columnIndex maps header names to positions and checks the required ones are present
type columnIndex map[string]int

func newColumnIndex(header []string, required []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (c columnIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseOdds(column, value string, commaDecimal bool) (decimal.Decimal, error) {
	if commaDecimal {
		value = strings.ReplaceAll(value, ",", ".")
	}
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s is empty", column)
	}
	odds, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q is not a number", column, value)
	}
	if odds.LessThan(models.MinOdds) {
		return decimal.Zero, fmt.Errorf("%s %s: %w", column, odds, models.ErrInvalidOdds)
	}
	return odds, nil
}

// parseDate accepts the football-data.co.uk layouts; unknown or empty values give the zero time
func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// readRows streams data rows to fn, passing 2-based line numbers to match spreadsheet rows
func readRows(r io.Reader, required []string, fn func(line int, idx columnIndex, record []string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := newColumnIndex(header, required)
	if err != nil {
		return err
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("failed to read line %d: %w", line, err)
		}
		fn(line, idx, record)
	}
}

// ParseFootballCSV parses a football results table. Malformed rows are skipped and reported.
func ParseFootballCSV(r io.Reader) ([]models.FootballMatch, ParseReport, error) {
	var (
		matches []models.FootballMatch
		report  ParseReport
	)

	err := readRows(r, footballRequired, func(line int, idx columnIndex, record []string) {
		report.Rows++
		match, err := footballFromRecord(idx, record)
		if err != nil {
			report.skip(line, err)
			return
		}
		matches = append(matches, match)
		report.Accepted++
	})
	return matches, report, err
}

func footballFromRecord(idx columnIndex, record []string) (models.FootballMatch, error) {
	match := models.FootballMatch{
		League:   idx.get(record, ColLeague),
		Date:     parseDate(idx.get(record, ColDate)),
		HomeTeam: idx.get(record, ColHomeTeam),
		AwayTeam: idx.get(record, ColAwayTeam),
	}
	if match.League == "" {
		return match, models.ErrEmptyLeague
	}

	result, err := models.ParseFullTimeResult(idx.get(record, ColResult))
	if err != nil {
		return match, fmt.Errorf("%s %q: %w", ColResult, idx.get(record, ColResult), err)
	}
	match.Result = result

	if match.OddsHome, err = parseOdds(ColOddsHome, idx.get(record, ColOddsHome), false); err != nil {
		return match, err
	}
	if match.OddsDraw, err = parseOdds(ColOddsDraw, idx.get(record, ColOddsDraw), false); err != nil {
		return match, err
	}
	if match.OddsAway, err = parseOdds(ColOddsAway, idx.get(record, ColOddsAway), false); err != nil {
		return match, err
	}
	return match, nil
}

// ParseTennisCSV parses a tennis results table. Prices may use a comma as the decimal separator.
func ParseTennisCSV(r io.Reader) ([]models.TennisMatch, ParseReport, error) {
	var (
		matches []models.TennisMatch
		report  ParseReport
	)

	err := readRows(r, tennisRequired, func(line int, idx columnIndex, record []string) {
		report.Rows++
		match, err := tennisFromRecord(idx, record)
		if err != nil {
			report.skip(line, err)
			return
		}
		matches = append(matches, match)
		report.Accepted++
	})
	return matches, report, err
}

func tennisFromRecord(idx columnIndex, record []string) (models.TennisMatch, error) {
	match := models.TennisMatch{
		Tournament: idx.get(record, ColTournament),
		Date:       parseDate(idx.get(record, ColDate)),
		Winner:     idx.get(record, ColWinner),
		Loser:      idx.get(record, ColLoser),
	}

	var err error
	if match.OddsWinner, err = parseOdds(ColOddsWinner, idx.get(record, ColOddsWinner), true); err != nil {
		return match, err
	}
	if match.OddsLoser, err = parseOdds(ColOddsLoser, idx.get(record, ColOddsLoser), true); err != nil {
		return match, err
	}
	return match, nil
}
