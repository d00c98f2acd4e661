package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ai-datacharts-be/pkg/apperror"
)

// Load parses raw upload bytes into a Table based on the file extension.
// Empty files, unsupported extensions, unreadable content, and zero-row
// datasets are all rejected with an InputFormat error.
func Load(filename string, raw []byte) (*Table, error) {
	if len(raw) == 0 {
		return nil, apperror.InputFormat("Uploaded file is empty.")
	}
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSV(raw)
	case ".xlsx":
		records, err = readXLSX(raw)
	case ".xls":
		// Legacy OLE workbooks need a separate parser; excelize only reads
		// the OOXML format.
		return nil, apperror.InputFormat("Legacy .xls workbooks are not supported. Save the file as .xlsx or .csv.")
	default:
		return nil, apperror.InputFormat("Only CSV and Excel files are supported.")
	}
	if err != nil {
		return nil, apperror.InputFormat("Failed to read file: %v", err)
	}
	return tableFromRecords(records)
}

func readCSV(raw []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// tableFromRecords converts a header row plus data rows into typed columns.
// Types are inferred per column, not per cell: a column becomes numeric only
// when every present cell parses as a number, otherwise every present cell
// stays a string. Ragged rows are padded with missing cells.
func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperror.InputFormat("Dataset has no rows.")
	}
	header := records[0]
	if len(header) == 0 {
		return nil, apperror.InputFormat("Dataset has no columns.")
	}
	data := records[1:]
	if len(data) == 0 {
		return nil, apperror.InputFormat("Dataset has no rows.")
	}

	columns := make([]Column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		cells := make([]string, len(data))
		for rowIdx, record := range data {
			if i < len(record) {
				cells[rowIdx] = strings.TrimSpace(record[i])
			}
		}
		columns[i] = Column{Name: name, Values: columnValues(cells)}
	}
	table, err := NewTable(columns)
	if err != nil {
		return nil, apperror.InputFormat("Failed to read file: %v", err)
	}
	return table, nil
}

// columnValues types a whole column at once. A single text cell keeps the
// entire column textual, so mixed columns like ["North", "5", "South"] stay
// categorical instead of splintering into per-cell types.
func columnValues(cells []string) []interface{} {
	numeric := false
	for _, s := range cells {
		if s == "" || isMissingMarker(s) {
			continue
		}
		if _, ok := parseNumber(s); !ok {
			numeric = false
			break
		}
		numeric = true
	}

	values := make([]interface{}, len(cells))
	for i, s := range cells {
		if s == "" || isMissingMarker(s) {
			continue
		}
		if numeric {
			f, _ := parseNumber(s)
			values[i] = f
		} else {
			values[i] = s
		}
	}
	return values
}

// isMissingMarker reports tokens that parse to a non-finite float. Exports
// commonly write NaN and Inf for absent values; storing them would make the
// table unserializable.
func isMissingMarker(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}
