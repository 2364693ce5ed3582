// Package export writes movements out as flat CSV rows.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mmynk/splitledger/internal/models"
)

// Header is the column row of every export.
var Header = []string{"Fecha", "Tipo", "Categoría", "Descripción", "Monto"}

var kindLabels = map[models.MovementKind]string{
	models.KindIncome:  "ingreso",
	models.KindExpense: "gasto",
	models.KindPayment: "pago",
}

// CSVWriter writes movements to CSV.
type CSVWriter struct {
	// OmitHeader skips the column row, for appending to an existing file.
	OmitHeader bool
}

// WriteToFile writes movements to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, movements []models.Movement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, movements); err != nil {
		return err
	}
	return f.Close()
}

// Write writes one row per movement. Reconciliation detail is not exported.
func (w *CSVWriter) Write(out io.Writer, movements []models.Movement) error {
	writer := csv.NewWriter(out)

	if !w.OmitHeader {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, m := range movements {
		if err := writer.Write(Row(m)); err != nil {
			return fmt.Errorf("failed to write CSV row for movement %s: %w", m.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Row is the CSV record of a single movement.
func Row(m models.Movement) []string {
	kind, ok := kindLabels[m.Kind]
	if !ok {
		kind = string(m.Kind)
	}
	return []string{
		m.Date.UTC().Format("2006-01-02"),
		kind,
		m.Category,
		m.Description,
		strconv.FormatInt(m.Amount, 10),
	}
}
