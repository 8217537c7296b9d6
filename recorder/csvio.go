package recorder

import (
	"encoding/csv"
	"os"
)

// createWithHeader creates the file, truncating it if present, and
// writes the header row.
func createWithHeader(filename string, header []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		_ = file.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

// appendRows appends data rows to a CSV file, creating it if missing.
func appendRows(filename string, rows [][]string) error {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

// fileExists reports whether filename exists and is a regular file.
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
