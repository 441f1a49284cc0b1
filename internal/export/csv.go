package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const keysSeparator = ", "

// CSVExporter writes the dataset to a file, one row per vacancy, with a
// leading unnamed row index column.
type CSVExporter struct {
	path string
}

func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

func (e *CSVExporter) Name() string {
	return "csv"
}

func (e *CSVExporter) Export(ctx context.Context, d *dataset.Dataset) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	tmp := e.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}

	if err = WriteCSV(file, d); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, e.path)
}

func WriteCSV(w io.Writer, d *dataset.Dataset) error {

	if err := d.Validate(); err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	header := append([]string{""}, dataset.ColumnNames...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < d.Len(); i++ {
		row := []string{
			strconv.Itoa(i),
			d.Ids[i],
			d.Employer[i],
			d.Name[i],
			strconv.FormatBool(d.Salary[i]),
			formatAmount(d.From[i]),
			formatAmount(d.To[i]),
			d.Experience[i],
			d.Schedule[i],
			strings.Join(d.Keys[i], keysSeparator),
			d.Description[i],
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatAmount(amount *int) string {
	if amount == nil {
		return ""
	}
	return strconv.Itoa(*amount)
}
