package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/chrono"
	enc "github.com/orgdesk/admin/internal/encoding"
	"github.com/orgdesk/admin/internal/movement"
)

// ErrNoProfile is returned when no header row matches a known layout.
var ErrNoProfile = errors.New("no matching statement layout")

var dateLayouts = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

// Parser reads CSV bank statements and produces movement params. The layout
// is detected by matching header rows against the known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]movement.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = delimiter(string(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, pos, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	return parseRows(profile, pos, rows[headerIdx+1:], headerIdx+1)
}

// delimiter picks ';' unless the first non-empty line only has commas.
func delimiter(s string) rune {
	for line := range strings.Lines(s) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.Contains(line, ";") && strings.Contains(line, ",") {
			return ','
		}

		break
	}

	return ';'
}

// detectProfile finds the first row that is the header of a known layout.
func detectProfile(rows [][]string) (*Profile, map[role]int, int) {
	for rowIdx, row := range rows {
		for i := range profiles {
			if pos, ok := profiles[i].positions(row); ok {
				return &profiles[i], pos, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows extracts movements from the rows below the header. Rows without
// a date or a non-zero amount (footers, page markers) are skipped.
func parseRows(p *Profile, pos map[role]int, rows [][]string, headerRowNum int) ([]movement.CreateParams, error) {
	out := []movement.CreateParams{}

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, pos[roleDate]))
		if !ok {
			continue
		}

		desc := cellValue(row, pos[roleDescription])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, typ, ok := rowAmount(p, pos, row)
		if !ok {
			continue
		}

		out = append(out, movement.CreateParams{
			Description: desc,
			Amount:      amount,
			Type:        typ,
			Date:        date.Format(chrono.Layout),
		})
	}

	return out, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func rowAmount(p *Profile, pos map[role]int, row []string) (decimal.Decimal, movement.Type, bool) {
	if p.split() {
		if d, ok := nonZero(cellValue(row, pos[roleDebit]), p.DecimalPoint); ok {
			return d.Abs(), movement.TypeExpense, true
		}

		if d, ok := nonZero(cellValue(row, pos[roleCredit]), p.DecimalPoint); ok {
			return d.Abs(), movement.TypeIncome, true
		}

		return decimal.Zero, "", false
	}

	d, ok := nonZero(cellValue(row, pos[roleAmount]), p.DecimalPoint)
	if !ok {
		return decimal.Zero, "", false
	}

	if d.IsNegative() {
		return d.Neg(), movement.TypeExpense, true
	}

	return d, movement.TypeIncome, true
}

func nonZero(s string, decimalPoint bool) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s, decimalPoint)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
