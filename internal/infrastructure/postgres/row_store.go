package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

var _ repository.RowStore = (*RowStore)(nil)

// schemaSQL espejo de la planilha: una fila por (tabla, número de fila física).
// La PK es diferida para poder renumerar filas al borrar dentro de la misma transacción.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS planilha_tabelas (
	nome       text PRIMARY KEY,
	cabecalho  jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS planilha_linhas (
	tabela   text    NOT NULL REFERENCES planilha_tabelas (nome) ON DELETE CASCADE,
	linha    integer NOT NULL,
	celulas  jsonb   NOT NULL,
	CONSTRAINT planilha_linhas_pk PRIMARY KEY (tabela, linha) DEFERRABLE INITIALLY DEFERRED
);`

// RowStore implementación de RowStore sobre PostgreSQL (espejo autoalojado de la planilha).
type RowStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewRowStore construye el adaptador con el pool.
func NewRowStore(pool *pgxpool.Pool) *RowStore {
	return &RowStore{pool: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea las tablas si no existen y registra las hojas conocidas.
func (s *RowStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	for _, t := range sheet.AllTables {
		header, err := json.Marshal(sheet.Headers(t))
		if err != nil {
			return fmt.Errorf("encabezado %s: %w", t, err)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO planilha_tabelas (nome, cabecalho) VALUES ($1, $2) ON CONFLICT (nome) DO NOTHING`,
			string(t), header)
		if err != nil {
			return fmt.Errorf("registrar tabla %s: %w", t, err)
		}
	}
	return nil
}

func (s *RowStore) Rows(ctx context.Context, table sheet.Table) ([]sheet.Row, error) {
	if err := s.checkTable(ctx, s.pool, table, false); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT linha, celulas FROM planilha_linhas WHERE tabela = $1 ORDER BY linha`, string(table))
	if err != nil {
		return nil, fmt.Errorf("listar %q: %v: %w", table, err, domain.ErrTableUnavailable)
	}
	defer rows.Close()

	var out []sheet.Row
	for rows.Next() {
		var (
			number int
			raw    []byte
		)
		if err := rows.Scan(&number, &raw); err != nil {
			return nil, fmt.Errorf("scan fila de %q: %w", table, err)
		}
		var cells []any
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, fmt.Errorf("decodificar fila %d de %q: %w", number, table, err)
		}
		out = append(out, sheet.Row{Number: number, Cells: cells})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar %q: %v: %w", table, err, domain.ErrTableUnavailable)
	}
	return out, nil
}

func (s *RowStore) Append(ctx context.Context, table sheet.Table, cells ...[]any) error {
	if len(cells) == 0 {
		return nil
	}
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		if err := s.checkTable(ctx, tx, table, true); err != nil {
			return err
		}
		var last int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(linha), $2) FROM planilha_linhas WHERE tabela = $1`,
			string(table), sheet.HeaderRow).Scan(&last)
		if err != nil {
			return fmt.Errorf("última fila de %q: %w", table, err)
		}
		for i, c := range cells {
			payload, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("codificar fila: %w", err)
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO planilha_linhas (tabela, linha, celulas) VALUES ($1, $2, $3)`,
				string(table), last+1+i, payload)
			if err != nil {
				return fmt.Errorf("insertar en %q: %w", table, err)
			}
		}
		return nil
	})
}

func (s *RowStore) Update(ctx context.Context, table sheet.Table, row sheet.Row) error {
	payload, err := json.Marshal(row.Cells)
	if err != nil {
		return fmt.Errorf("codificar fila: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE planilha_linhas SET celulas = $3 WHERE tabela = $1 AND linha = $2`,
		string(table), row.Number, payload)
	if err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("actualizar %q: %w", table, domain.ErrTableUnavailable)
		}
		return fmt.Errorf("actualizar fila %d de %q: %w", row.Number, table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("fila %d de %q: %w", row.Number, table, domain.ErrNotFound)
	}
	return nil
}

// Delete borra la fila y renumera las siguientes, como hace la planilha.
func (s *RowStore) Delete(ctx context.Context, table sheet.Table, rowNumber int) error {
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		if err := s.checkTable(ctx, tx, table, true); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`DELETE FROM planilha_linhas WHERE tabela = $1 AND linha = $2`, string(table), rowNumber)
		if err != nil {
			return fmt.Errorf("borrar fila %d de %q: %w", rowNumber, table, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("fila %d de %q: %w", rowNumber, table, domain.ErrNotFound)
		}
		_, err = tx.Exec(ctx,
			`UPDATE planilha_linhas SET linha = linha - 1 WHERE tabela = $1 AND linha > $2`,
			string(table), rowNumber)
		if err != nil {
			return fmt.Errorf("renumerar %q: %w", table, err)
		}
		return nil
	})
}

// checkTable verifica que la hoja exista; con lock toma FOR UPDATE sobre su
// registro para serializar anexos y borrados de la misma tabla.
func (s *RowStore) checkTable(ctx context.Context, q Querier, table sheet.Table, lock bool) error {
	query := `SELECT nome FROM planilha_tabelas WHERE nome = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var name string
	err := q.QueryRow(ctx, query, string(table)).Scan(&name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), isUndefinedTable(err):
		return fmt.Errorf("tabla %q: %w", table, domain.ErrTableUnavailable)
	default:
		return fmt.Errorf("tabla %q: %v: %w", table, err, domain.ErrTableUnavailable)
	}
}
