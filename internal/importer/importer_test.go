package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,Units,Power\nSwitch,1,45\nServer,2,750\n", ','},
		{"semicolon", "Name;Units;Power\nSwitch;1;45\nServer;2;750\n", ';'},
		{"tab", "Name\tUnits\tPower\nSwitch\t1\t45\nServer\t2\t750\n", '\t'},
		{"pipe", "Name|Units|Power\nSwitch|1|45\nServer|2|750\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q delimiter, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"ID", "Name", "Category", "Units", "Power", "Weight", "Depth", "Description"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{ID: 0, Name: 1, Category: 2, Units: 3, Power: 4, Weight: 5, Depth: 6, Description: 7}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"MODEL", "Height", "Watts", "kg", "Type"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 {
		t.Errorf("expected Name at 0, got %d", mapping.Name)
	}
	if mapping.Units != 1 {
		t.Errorf("expected Units at 1, got %d", mapping.Units)
	}
	if mapping.Power != 2 {
		t.Errorf("expected Power at 2, got %d", mapping.Power)
	}
	if mapping.Weight != 3 {
		t.Errorf("expected Weight at 3, got %d", mapping.Weight)
	}
	if mapping.Category != 4 {
		t.Errorf("expected Category at 4, got %d", mapping.Category)
	}
	if mapping.Depth != -1 || mapping.ID != -1 || mapping.Description != -1 {
		t.Errorf("expected unmapped columns to be -1, got %+v", mapping)
	}
}

func TestDetectColumns_FirstMatchWins(t *testing.T) {
	mapping, _ := DetectColumns([]string{"Name", "Label", "U"})
	if mapping.Name != 0 {
		t.Errorf("expected Name at 0, got %d", mapping.Name)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Switch", "1", "45"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "ID,Name,Category,Units,Power,Weight,Depth,Description\n" +
		"sw-48,Core Switch,Network,1,150,6.5,400,48-port switch\n" +
		"srv-2,App Server,Servers,2,800,27,700,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Equipment) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Equipment))
	}

	sw := result.Equipment[0]
	if sw.ID != "sw-48" || sw.Name != "Core Switch" || sw.Category != "Network" {
		t.Errorf("unexpected identity fields: %+v", sw)
	}
	if sw.Units != 1 || sw.Power != 150 || sw.Weight != 6.5 || sw.Depth != 400 {
		t.Errorf("unexpected ratings: %+v", sw)
	}
	if sw.Description != "48-port switch" {
		t.Errorf("expected description, got '%s'", sw.Description)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Switch,1,45,3.2,250,Network\nServer,2U,750,28.5,650,Servers,Rack server\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Equipment), result.Errors)
	}
	if result.Equipment[1].Units != 2 {
		t.Errorf("expected 2 units from '2U', got %d", result.Equipment[1].Units)
	}
	if result.Equipment[1].Description != "Rack server" {
		t.Errorf("expected description from column 7, got '%s'", result.Equipment[1].Description)
	}
	if len(result.Equipment[0].ID) != 8 {
		t.Errorf("expected generated 8-char id, got '%s'", result.Equipment[0].ID)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	data := "Thing,Rack Height\nSwitch,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Equipment), result.Errors)
	}
}

func TestImportCSVFromReader_MissingCategoryWarns(t *testing.T) {
	data := "Name,Units\nBlank Panel,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Equipment))
	}
	if result.Equipment[0].Category != DefaultCategory {
		t.Errorf("expected category '%s', got '%s'", DefaultCategory, result.Equipment[0].Category)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "No category") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing category warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"missing name", ",1,45", "Missing name"},
		{"missing units", "Switch,,45", "Missing units"},
		{"invalid units", "Switch,abc,45", "Invalid units"},
		{"zero units", "Switch,0,45", "at least 1"},
		{"invalid power", "Switch,1,lots", "Invalid power"},
		{"negative weight", "Switch,1,45,-2", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Name,Units,Power,Weight\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')
			if len(result.Equipment) != 0 {
				t.Errorf("expected no items, got %d", len(result.Equipment))
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
			if !strings.HasPrefix(result.Errors[0], "Line 2") {
				t.Errorf("expected error to reference line 2, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Name,Units\nSwitch,1\nBroken,x\nServer,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 2 {
		t.Errorf("expected 2 valid items, got %d", len(result.Equipment))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_DuplicateIDs(t *testing.T) {
	data := "ID,Name,Units\nx1,Switch,1\nx1,Server,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 1 {
		t.Errorf("expected 1 item, got %d", len(result.Equipment))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Duplicate id") {
		t.Errorf("expected duplicate id error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Name,Power\nSwitch,45\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing Units column")
	}
	if !strings.Contains(result.Errors[0], "Units") {
		t.Errorf("expected error to mention Units, got '%s'", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyRowsAndWhitespace(t *testing.T) {
	data := " Name , Units \n\n Switch , 1 \n,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Equipment) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Equipment), result.Errors)
	}
	if result.Equipment[0].Name != "Switch" {
		t.Errorf("expected trimmed name, got '%s'", result.Equipment[0].Name)
	}
}

func TestImportCSVFromReader_Empty(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportResult_Catalog(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Units\nSwitch,1\n"), ',')
	cat := result.Catalog()
	if err := cat.Validate(); err != nil {
		t.Errorf("imported catalog should validate: %v", err)
	}
	if len(cat.Equipment) != 1 || cat.Cabinets == nil {
		t.Errorf("unexpected catalog: %+v", cat)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equipment.csv")
	content := "Name;Units;Power\nSwitch;1;45\nServer;2;750\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportFile(path)

	if len(result.Equipment) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Equipment), result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	result := ImportFile("equipment.pdf")
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Unsupported") {
		t.Errorf("expected unsupported file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equipment.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Category", "U", "Watts", "Weight"},
		{"Storage Array", "Storage", 4, 1200, 45},
		{"Patch Panel", "Passive", 1, 0, 1.5},
	})

	result := ImportFile(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Equipment) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Equipment))
	}
	if result.Equipment[0].Units != 4 {
		t.Errorf("expected 4 units, got %d", result.Equipment[0].Units)
	}
	if result.Equipment[0].Power != 1200 {
		t.Errorf("expected power 1200, got %f", result.Equipment[0].Power)
	}
	if result.Equipment[1].Weight != 1.5 {
		t.Errorf("expected weight 1.5, got %f", result.Equipment[1].Weight)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Switch", 1, 45},
		{"Server", 2, 750},
	})

	result := ImportExcel(path)

	if len(result.Equipment) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Equipment), result.Errors)
	}
	if !strings.HasPrefix(result.Equipment[0].Name, "Switch") {
		t.Errorf("expected 'Switch', got '%s'", result.Equipment[0].Name)
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Units"},
		{"Switch", "tall"},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 || !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("expected row 2 error, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
