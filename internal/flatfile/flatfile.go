// Package flatfile reads and writes the comma-delimited record files
// that back every store. Whole-table rewrites go through a temp file
// and an atomic rename so a snapshot is never left torn on disk.
package flatfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"supershop/m/domain"
)

const delimiter = ","

// ReadRecords loads every line of the file at path, split on the
// delimiter. A missing file is an empty table, not an error.
func ReadRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrPersistence, path, err)
	}
	defer file.Close()

	var records [][]string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		records = append(records, strings.Split(line, delimiter))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, path, err)
	}
	return records, nil
}

// WriteRecords rewrites the whole table at path from records. The new
// snapshot is staged in a temp file in the same directory and renamed
// over the old one.
func WriteRecords(path string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: stage %s: %v", domain.ErrPersistence, path, err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	for _, record := range records {
		if _, err := writer.WriteString(Join(record) + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, path, err)
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %v", domain.ErrPersistence, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrPersistence, path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: commit %s: %v", domain.ErrPersistence, path, err)
	}
	return nil
}

// AppendRecords adds records to the end of the file at path, creating
// it if needed. Used for the append-only ledger files.
func AppendRecords(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", domain.ErrPersistence, path, err)
	}
	defer file.Close()

	for _, record := range records {
		if _, err := file.WriteString(Join(record) + "\n"); err != nil {
			return fmt.Errorf("%w: append %s: %v", domain.ErrPersistence, path, err)
		}
	}
	return nil
}

// Join builds one record line. Delimiters inside fields would corrupt
// the table, so they are replaced with spaces on the way out.
func Join(fields []string) string {
	clean := make([]string, len(fields))
	for i, field := range fields {
		clean[i] = strings.ReplaceAll(field, delimiter, " ")
	}
	return strings.Join(clean, delimiter)
}
