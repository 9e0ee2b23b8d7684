package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "region, amount ,channel\nnorth,10,web\nsouth, 20 \neast,30,store,extra\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := NewDataReader(path, ReaderConfig{}).ReadData()
	require.NoError(t, err)

	assert.Equal(t, "sales.csv", data.Name)
	assert.Equal(t, []string{"region", "amount", "channel"}, data.Headers)
	assert.Equal(t, [][]string{
		{"north", "10", "web"},
		{"south", "20", ""},
		{"east", "30", "store"},
	}, data.Rows)
}

func TestReadCSVMaxRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n2\n3\n"), 0o644))

	data, err := NewDataReader(path, ReaderConfig{MaxRows: 2}).ReadData()
	require.NoError(t, err)
	assert.Len(t, data.Rows, 2)
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"customer", "revenue"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"acme", 100}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"globex", 250}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := NewDataReader(path, ReaderConfig{}).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"customer", "revenue"}, data.Headers)
	assert.Equal(t, [][]string{{"acme", "100"}, {"globex", "250"}}, data.Rows)
}

func TestReadDataErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewDataReader(filepath.Join(dir, "missing.csv"), ReaderConfig{}).ReadData()
	assert.ErrorContains(t, err, "not found")

	headerOnly := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("a,b\n"), 0o644))
	_, err = NewDataReader(headerOnly, ReaderConfig{}).ReadData()
	assert.ErrorContains(t, err, "at least a header row")
}
