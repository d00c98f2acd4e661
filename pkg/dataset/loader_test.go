package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ai-datacharts-be/pkg/apperror"
)

func TestLoadCSV(t *testing.T) {
	raw := []byte("region,amount\nNorth,10\nSouth,20\nNorth,\n")

	table, err := Load("sales.csv", raw)
	require.NoError(t, err)
	require.Len(t, table.Columns, 2)
	assert.Equal(t, 3, table.RowCount())

	amount := table.Column("amount")
	require.NotNil(t, amount)
	assert.Equal(t, float64(10), amount.Values[0])
	assert.Nil(t, amount.Values[2])

	region := table.Column("region")
	require.NotNil(t, region)
	assert.Equal(t, "North", region.Values[0])
}

func TestLoadCSVRaggedRowsArePadded(t *testing.T) {
	raw := []byte("a,b,c\n1,2\n4,5,6\n")

	table, err := Load("ragged.csv", raw)
	require.NoError(t, err)
	assert.Nil(t, table.Column("c").Values[0])
	assert.Equal(t, float64(6), table.Column("c").Values[1])
}

func TestLoadCSVNaNAndInfAreMissing(t *testing.T) {
	raw := []byte("amount\n1\nNaN\n3\n-Inf\n")

	table, err := Load("sales.csv", raw)
	require.NoError(t, err)

	amount := table.Column("amount")
	require.NotNil(t, amount)
	assert.Equal(t, float64(1), amount.Values[0])
	assert.Nil(t, amount.Values[1])
	assert.Equal(t, float64(3), amount.Values[2])
	assert.Nil(t, amount.Values[3])
	assert.Equal(t, KindNumeric, Classify(amount))

	// missing markers must not leak into the profile: NaN is not
	// serializable and would break the upload response
	profile := Profile(table)
	_, err = json.Marshal(profile.Preview)
	require.NoError(t, err)
	_, err = json.Marshal(profile.Stats)
	require.NoError(t, err)
	assert.NotEqual(t, "{}", profile.ProfileText)
}

func TestLoadCSVNaNInTextColumnIsMissing(t *testing.T) {
	raw := []byte("region\nNorth\nNaN\nSouth\n")

	table, err := Load("regions.csv", raw)
	require.NoError(t, err)

	region := table.Column("region")
	require.NotNil(t, region)
	assert.Equal(t, []interface{}{"North", nil, "South"}, region.Values)
	assert.Equal(t, KindCategorical, Classify(region))
}

func TestLoadCSVMixedColumnStaysText(t *testing.T) {
	raw := []byte("label\nNorth\n5\nSouth\n")

	table, err := Load("labels.csv", raw)
	require.NoError(t, err)

	label := table.Column("label")
	require.NotNil(t, label)
	// one numeric-looking cell does not splinter the column: every cell
	// stays text and the column remains usable as a category axis
	assert.Equal(t, []interface{}{"North", "5", "South"}, label.Values)
	assert.Equal(t, KindCategorical, Classify(label))
	require.NotNil(t, BestCategorical(table))
	assert.Equal(t, "label", BestCategorical(table).Name)
}

func TestLoadCSVBlankHeadersGetPlaceholderNames(t *testing.T) {
	raw := []byte("a,,c\n1,2,3\n")

	table, err := Load("headers.csv", raw)
	require.NoError(t, err)
	assert.NotNil(t, table.Column("column_2"))
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "region"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "amount"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "North"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 10))
	require.NoError(t, f.SetCellValue(sheet, "A3", "South"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 20))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Load("sales.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, "South", table.Column("region").Values[1])
	assert.Equal(t, float64(20), table.Column("amount").Values[1])
}

func TestLoadRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		raw      []byte
		message  string
	}{
		{
			name:     "empty file",
			filename: "empty.csv",
			raw:      nil,
			message:  "Uploaded file is empty.",
		},
		{
			name:     "unsupported extension",
			filename: "data.json",
			raw:      []byte(`{"a":1}`),
			message:  "Only CSV and Excel files are supported.",
		},
		{
			name:     "legacy xls",
			filename: "old.xls",
			raw:      []byte{0xd0, 0xcf, 0x11, 0xe0},
			message:  "Legacy .xls workbooks are not supported. Save the file as .xlsx or .csv.",
		},
		{
			name:     "header only",
			filename: "header.csv",
			raw:      []byte("a,b,c\n"),
			message:  "Dataset has no rows.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.filename, tt.raw)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInputFormat, apperror.KindOf(err))
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestLoadCSVUnreadableContent(t *testing.T) {
	_, err := Load("broken.csv", []byte("a,\"unterminated\n1,2\n"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindInputFormat, apperror.KindOf(err))
}
