// Package memory implementa RowStore en memoria para tests y modo demo.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

var _ repository.RowStore = (*RowStore)(nil)

// RowStore planilha en memoria. Solo existen las tablas indicadas en New;
// leer una tabla ausente devuelve ErrTableUnavailable, igual que una pestaña
// borrada en la planilha real.
type RowStore struct {
	mu     sync.RWMutex
	tables map[sheet.Table][][]any
}

// New crea el store con las tablas dadas (todas si no se indica ninguna).
func New(tables ...sheet.Table) *RowStore {
	if len(tables) == 0 {
		tables = sheet.AllTables
	}
	s := &RowStore{tables: make(map[sheet.Table][][]any, len(tables))}
	for _, t := range tables {
		s.tables[t] = nil
	}
	return s
}

// Rows devuelve copias de las filas de datos; Number empieza en 2.
func (s *RowStore) Rows(_ context.Context, table sheet.Table) ([]sheet.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("memory: tabla %q: %w", table, domain.ErrTableUnavailable)
	}
	out := make([]sheet.Row, len(data))
	for i, cells := range data {
		out[i] = sheet.Row{Number: i + sheet.HeaderRow + 1, Cells: clone(cells)}
	}
	return out, nil
}

func (s *RowStore) Append(_ context.Context, table sheet.Table, cells ...[]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("memory: tabla %q: %w", table, domain.ErrTableUnavailable)
	}
	for _, c := range cells {
		data = append(data, clone(c))
	}
	s.tables[table] = data
	return nil
}

func (s *RowStore) Update(_ context.Context, table sheet.Table, row sheet.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("memory: tabla %q: %w", table, domain.ErrTableUnavailable)
	}
	i := row.Number - sheet.HeaderRow - 1
	if i < 0 || i >= len(data) {
		return fmt.Errorf("memory: fila %d de %q: %w", row.Number, table, domain.ErrNotFound)
	}
	data[i] = clone(row.Cells)
	return nil
}

// Delete elimina la fila; las siguientes suben una posición.
func (s *RowStore) Delete(_ context.Context, table sheet.Table, rowNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("memory: tabla %q: %w", table, domain.ErrTableUnavailable)
	}
	i := rowNumber - sheet.HeaderRow - 1
	if i < 0 || i >= len(data) {
		return fmt.Errorf("memory: fila %d de %q: %w", rowNumber, table, domain.ErrNotFound)
	}
	s.tables[table] = append(data[:i], data[i+1:]...)
	return nil
}

func clone(cells []any) []any {
	out := make([]any, len(cells))
	copy(out, cells)
	return out
}
