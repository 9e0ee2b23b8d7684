package excel

// ExcelData represents a tabular dataset read from a workbook or CSV file
type ExcelData struct {
	Name    string     // File name without directory
	Headers []string   // Column headers
	Rows    [][]string // Data rows, padded or cut to len(Headers)
}

// ReaderConfig tunes how files are read
type ReaderConfig struct {
	Sheet   string // Workbook sheet; empty means the first sheet
	MaxRows int    // Data rows to keep; 0 keeps all
}
