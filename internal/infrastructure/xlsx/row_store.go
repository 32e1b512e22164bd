// Package xlsx implementa RowStore sobre un libro .xlsx local (modo offline).
// Cada tabla es una hoja del libro y la fila 1 es el encabezado.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

var _ repository.RowStore = (*RowStore)(nil)

// RowStore guarda el libro abierto en memoria y lo persiste después de cada escritura.
type RowStore struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// Open abre el libro en path; si no existe lo crea con todas las tablas y sus encabezados.
func Open(path string) (*RowStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Init(path); err != nil {
			return nil, err
		}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir %s: %w", path, err)
	}
	return &RowStore{path: path, file: f}, nil
}

// Init crea un libro nuevo con una hoja por tabla y su fila de encabezado.
func Init(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	for i, t := range sheet.AllTables {
		name := string(t)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("xlsx: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
		headers := toAny(sheet.Headers(t))
		if err := f.SetSheetRow(name, "A1", &headers); err != nil {
			return fmt.Errorf("xlsx: encabezado %s: %w", name, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", path, err)
	}
	return nil
}

// Close libera el libro.
func (s *RowStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *RowStore) Rows(_ context.Context, table sheet.Table) ([]sheet.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.rawRows(table)
	if err != nil {
		return nil, err
	}
	out := make([]sheet.Row, 0, len(raw))
	for i := sheet.HeaderRow; i < len(raw); i++ {
		out = append(out, sheet.Row{Number: i + 1, Cells: s.typed(table, i+1, raw[i])})
	}
	return out, nil
}

func (s *RowStore) Append(_ context.Context, table sheet.Table, cells ...[]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.rawRows(table)
	if err != nil {
		return err
	}
	next := len(raw) + 1
	if next <= sheet.HeaderRow {
		next = sheet.HeaderRow + 1
	}
	for i, c := range cells {
		if err := s.setRow(table, next+i, c); err != nil {
			return err
		}
	}
	return s.save()
}

func (s *RowStore) Update(_ context.Context, table sheet.Table, row sheet.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.rawRows(table)
	if err != nil {
		return err
	}
	if row.Number <= sheet.HeaderRow || row.Number > len(raw) {
		return fmt.Errorf("xlsx: fila %d de %q: %w", row.Number, table, domain.ErrNotFound)
	}
	if err := s.setRow(table, row.Number, padded(row.Cells, sheet.Width(table))); err != nil {
		return err
	}
	return s.save()
}

func (s *RowStore) Delete(_ context.Context, table sheet.Table, rowNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.rawRows(table)
	if err != nil {
		return err
	}
	if rowNumber <= sheet.HeaderRow || rowNumber > len(raw) {
		return fmt.Errorf("xlsx: fila %d de %q: %w", rowNumber, table, domain.ErrNotFound)
	}
	if err := s.file.RemoveRow(string(table), rowNumber); err != nil {
		return fmt.Errorf("xlsx: borrar fila %d de %q: %w", rowNumber, table, err)
	}
	return s.save()
}

// rawRows lee la hoja con valores crudos (sin formato de celda).
func (s *RowStore) rawRows(table sheet.Table) ([][]string, error) {
	raw, err := s.file.GetRows(string(table), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer %q: %v: %w", table, err, domain.ErrTableUnavailable)
	}
	return raw, nil
}

func (s *RowStore) setRow(table sheet.Table, number int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, number)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	row := make([]any, len(cells))
	copy(row, cells)
	if err := s.file.SetSheetRow(string(table), cell, &row); err != nil {
		return fmt.Errorf("xlsx: escribir fila %d de %q: %w", number, table, err)
	}
	return nil
}

func (s *RowStore) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", s.path, err)
	}
	return nil
}

// padded completa con "" hasta width para pisar celdas viejas al actualizar.
func padded(cells []any, width int) []any {
	if len(cells) >= width {
		return cells
	}
	out := make([]any, width)
	copy(out, cells)
	for i := len(cells); i < width; i++ {
		out[i] = ""
	}
	return out
}

// typed devuelve las celdas con su tipo nativo: las numéricas como float64 y
// las booleanas como bool. El texto queda como string para que "R$ 1.234,56"
// siga pasando por el parser brasileño y "12.5" numérico no pierda el punto.
func (s *RowStore) typed(table sheet.Table, number int, ss []string) []any {
	out := make([]any, len(ss))
	for i, v := range ss {
		out[i] = v
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, number)
		if err != nil {
			continue
		}
		typ, err := s.file.GetCellType(string(table), cell)
		if err != nil {
			continue
		}
		switch typ {
		case excelize.CellTypeUnset, excelize.CellTypeNumber:
			// Sin atributo t la celda es numérica (así escribe excelize y Excel).
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				out[i] = f
			}
		case excelize.CellTypeBool:
			out[i] = v == "1" || strings.EqualFold(v, "true")
		}
	}
	return out
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, v := range ss {
		out[i] = v
	}
	return out
}
