// Package importer provides CSV and Excel import functionality for equipment
// definitions. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// DefaultCategory is assigned to imported equipment without a category.
const DefaultCategory = "Other"

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Equipment []model.Equipment
	Errors    []string
	Warnings  []string
}

// Catalog returns the imported equipment as a catalog suitable for merging.
func (r ImportResult) Catalog() model.Catalog {
	return model.Catalog{Cabinets: []model.Cabinet{}, Equipment: r.Equipment}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID          int
	Name        int
	Category    int
	Units       int
	Power       int
	Weight      int
	Depth       int
	Description int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":          {"id", "sku", "code", "part number"},
	"name":        {"name", "label", "model", "equipment", "item"},
	"category":    {"category", "type", "group"},
	"units":       {"units", "u", "ru", "height", "rack units", "size"},
	"power":       {"power", "watts", "watt", "w", "power (w)"},
	"weight":      {"weight", "kg", "mass", "weight (kg)"},
	"depth":       {"depth", "mm", "depth (mm)"},
	"description": {"description", "desc", "notes", "comment"},
}

// positionalMapping is used when the first row is not a header:
// Name, Units, Power, Weight, Depth, Category, Description.
var positionalMapping = ColumnMapping{
	ID:          -1,
	Name:        0,
	Units:       1,
	Power:       2,
	Weight:      3,
	Depth:       4,
	Category:    5,
	Description: 6,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID:          -1,
		Name:        -1,
		Category:    -1,
		Units:       -1,
		Power:       -1,
		Weight:      -1,
		Depth:       -1,
		Description: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				assign(&mapping, role, i)
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// assign records idx for role unless the role is already mapped.
func assign(m *ColumnMapping, role string, idx int) {
	var field *int
	switch role {
	case "id":
		field = &m.ID
	case "name":
		field = &m.Name
	case "category":
		field = &m.Category
	case "units":
		field = &m.Units
	case "power":
		field = &m.Power
	case "weight":
		field = &m.Weight
	case "depth":
		field = &m.Depth
	case "description":
		field = &m.Description
	default:
		return
	}
	if *field == -1 {
		*field = idx
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseUnits accepts plain integers as well as values such as "2U".
func parseUnits(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "U"), "u")
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseOptionalFloat parses a non-negative number; empty cells are zero.
func parseOptionalFloat(row []string, idx int, field, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	if v < 0 {
		return 0, fmt.Sprintf("%s: %s must not be negative", rowLabel, field)
	}
	return v, ""
}

// parseRow extracts an Equipment from a row using the given column mapping.
// Returns the equipment, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Equipment, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		return model.Equipment{}, fmt.Sprintf("%s: Missing name", rowLabel), ""
	}

	unitsStr := getCell(row, mapping.Units)
	if unitsStr == "" {
		return model.Equipment{}, fmt.Sprintf("%s: Missing units value", rowLabel), ""
	}
	units, err := parseUnits(unitsStr)
	if err != nil {
		return model.Equipment{}, fmt.Sprintf("%s: Invalid units '%s'", rowLabel, unitsStr), ""
	}
	if units < 1 {
		return model.Equipment{}, fmt.Sprintf("%s: Units must be at least 1", rowLabel), ""
	}

	power, errMsg := parseOptionalFloat(row, mapping.Power, "power", rowLabel)
	if errMsg != "" {
		return model.Equipment{}, errMsg, ""
	}
	weight, errMsg := parseOptionalFloat(row, mapping.Weight, "weight", rowLabel)
	if errMsg != "" {
		return model.Equipment{}, errMsg, ""
	}
	depth, errMsg := parseOptionalFloat(row, mapping.Depth, "depth", rowLabel)
	if errMsg != "" {
		return model.Equipment{}, errMsg, ""
	}

	var warning string
	category := getCell(row, mapping.Category)
	if category == "" {
		category = DefaultCategory
		warning = fmt.Sprintf("%s: No category, using '%s'", rowLabel, DefaultCategory)
	}

	eq := model.NewEquipment(name, category, units, power, weight, depth)
	if id := getCell(row, mapping.ID); id != "" {
		eq.ID = id
	}
	eq.Description = getCell(row, mapping.Description)

	return eq, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile imports equipment from a CSV or Excel file, chosen by extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return ImportExcel(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports equipment from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports equipment from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports equipment from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.Units == -1 {
			missing = append(missing, "Units")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// Unrecognized header: the units column is not numeric.
		if _, err := parseUnits(rows[0][positionalMapping.Units]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		eq, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[eq.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate id '%s'", rowLabel, eq.ID))
			continue
		}
		seen[eq.ID] = true
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Equipment = append(result.Equipment, eq)
	}

	return result
}
