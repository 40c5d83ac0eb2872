package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"tag_tracker_go/internal/model"
	"tag_tracker_go/internal/repository"
)

// CSV header names understood by the importer.
const (
	colCardNo      = "Card No"
	colColorName   = "Color Name"
	colColorNumber = "Color Number"
)

var formulaColumns = []string{"Formula 1", "Formula 2", "Formula 3"}

// Row outcomes reported by Import.
const (
	RowAdded   = "added"
	RowSkipped = "skipped"
	RowFailed  = "failed"
)

// ImportRow describes what happened to one CSV data row.
type ImportRow struct {
	Line        int
	CardNo      string
	ColorName   string
	ColorNumber string
	Status      string
	Reason      string
}

// ImportReport summarises an import run.
type ImportReport struct {
	Added   int
	Skipped int
	Failed  int
	// Total is the number of formulas stored after the import.
	Total int64
	Rows  []ImportRow
}

// ColorFormulaService bulk-loads color formulas from CSV.
type ColorFormulaService interface {
	Import(r io.Reader) (*ImportReport, error)
}

type colorFormulaService struct {
	repo repository.ColorFormulaRepository
}

func NewColorFormulaService(repo repository.ColorFormulaRepository) ColorFormulaService {
	return &colorFormulaService{repo: repo}
}

// Import reads a CSV with the columns
// Card No, Color Name, Color Number, Season, Formula 1, Formula 2, Formula 3.
// Rows whose color number is already stored, or appeared earlier in the
// file, are skipped. Rows lacking a color name or number fail individually.
// All new rows are written in a single transaction.
func (s *colorFormulaService) Import(r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalidInput("csv file is empty")
		}
		return nil, invalidInput("read csv header: %v", err)
	}
	index := headerIndex(header)
	for _, required := range []string{colColorName, colColorNumber} {
		if _, ok := index[required]; !ok {
			return nil, invalidInput("csv header is missing column %q", required)
		}
	}

	report := &ImportReport{}
	var candidates []model.ColorFormula
	var candidateRows []int
	seen := make(map[string]struct{})

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.addRow(ImportRow{Line: line, Status: RowFailed, Reason: err.Error()})
			continue
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := ImportRow{
			Line:        line,
			CardNo:      get(colCardNo),
			ColorName:   get(colColorName),
			ColorNumber: get(colColorNumber),
		}
		if row.ColorName == "" || row.ColorNumber == "" {
			row.Status, row.Reason = RowFailed, "color name and color number are required"
			report.addRow(row)
			continue
		}
		if _, dup := seen[row.ColorNumber]; dup {
			row.Status, row.Reason = RowSkipped, "duplicate color number in file"
			report.addRow(row)
			continue
		}
		seen[row.ColorNumber] = struct{}{}

		var parts []string
		for _, col := range formulaColumns {
			if v := get(col); v != "" {
				parts = append(parts, v)
			}
		}
		formula := strings.Join(parts, "\n")

		candidates = append(candidates, model.ColorFormula{
			ColorName:   row.ColorName,
			ColorNumber: row.ColorNumber,
			Formula:     formula,
			RawText:     model.FormatColorRawText(row.ColorName, row.ColorNumber, formula),
		})
		candidateRows = append(candidateRows, len(report.Rows))
		report.Rows = append(report.Rows, row)
	}

	numbers := make([]string, 0, len(candidates))
	for _, c := range candidates {
		numbers = append(numbers, c.ColorNumber)
	}
	existing, err := s.repo.ExistingColorNumbers(numbers)
	if err != nil {
		return nil, fmt.Errorf("look up existing color numbers: %w", err)
	}

	fresh := make([]model.ColorFormula, 0, len(candidates))
	for i, c := range candidates {
		row := &report.Rows[candidateRows[i]]
		if _, ok := existing[c.ColorNumber]; ok {
			row.Status, row.Reason = RowSkipped, "already exists"
			report.Skipped++
			continue
		}
		row.Status = RowAdded
		report.Added++
		fresh = append(fresh, c)
	}

	if err := s.repo.CreateAll(fresh); err != nil {
		return nil, fmt.Errorf("store color formulas: %w", err)
	}
	if report.Total, err = s.repo.Count(); err != nil {
		return nil, fmt.Errorf("count color formulas: %w", err)
	}
	return report, nil
}

func (r *ImportReport) addRow(row ImportRow) {
	switch row.Status {
	case RowSkipped:
		r.Skipped++
	case RowFailed:
		r.Failed++
	}
	r.Rows = append(r.Rows, row)
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}
