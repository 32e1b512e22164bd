// Package sheets implementa RowStore sobre Google Sheets (API v4) con una
// cuenta de servicio. Cada tabla es una pestaña de la planilha.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
)

const (
	readColumns = "A%d:Z"

	valueRender    = "UNFORMATTED_VALUE"
	dateTimeRender = "FORMATTED_STRING"
	valueInput     = "RAW"
	insertData     = "INSERT_ROWS"
)

var _ repository.RowStore = (*RowStore)(nil)

// Config credenciales de la cuenta de servicio. Se usa CredentialsJSON si viene;
// si no, el par ClientEmail/PrivateKey.
type Config struct {
	SpreadsheetID   string
	CredentialsJSON string
	ClientEmail     string
	PrivateKey      string
}

// RowStore cliente de la planilha. Los ids numéricos de las pestañas se
// resuelven por título una sola vez (solo se necesitan para borrar filas).
type RowStore struct {
	srv           *gsheets.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// New crea el cliente autenticado con la cuenta de servicio.
func New(ctx context.Context, cfg Config) (*RowStore, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("sheets: falta SHEETS_SPREADSHEET_ID")
	}

	var jwtCfg *jwt.Config
	if cfg.CredentialsJSON != "" {
		c, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: credenciales inválidas: %w", err)
		}
		jwtCfg = c
	} else {
		if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
			return nil, errors.New("sheets: faltan GOOGLE_SERVICE_ACCOUNT_EMAIL / GOOGLE_PRIVATE_KEY")
		}
		jwtCfg = &jwt.Config{
			Email: cfg.ClientEmail,
			// Las variables de entorno suelen traer la clave con "\n" literales.
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{gsheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
	}

	srv, err := gsheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: crear cliente: %w", err)
	}
	return NewWithService(srv, cfg.SpreadsheetID), nil
}

// NewWithService usa un *sheets.Service ya construido (endpoint propio en tests).
func NewWithService(srv *gsheets.Service, spreadsheetID string) *RowStore {
	return &RowStore{srv: srv, spreadsheetID: spreadsheetID, sheetIDs: make(map[string]int64)}
}

func (s *RowStore) Rows(ctx context.Context, table sheet.Table) ([]sheet.Row, error) {
	first := sheet.HeaderRow + 1
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, a1(table, fmt.Sprintf(readColumns, first))).
		ValueRenderOption(valueRender).
		DateTimeRenderOption(dateTimeRender).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: leer %q: %v: %w", table, err, domain.ErrTableUnavailable)
	}

	out := make([]sheet.Row, 0, len(resp.Values))
	for i, cells := range resp.Values {
		out = append(out, sheet.Row{Number: first + i, Cells: cells})
	}
	return out, nil
}

func (s *RowStore) Append(ctx context.Context, table sheet.Table, cells ...[]any) error {
	if len(cells) == 0 {
		return nil
	}
	vr := &gsheets.ValueRange{Values: toValues(cells)}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, a1(table, "A1"), vr).
		ValueInputOption(valueInput).
		InsertDataOption(insertData).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: anexar en %q: %w", table, err)
	}
	return nil
}

func (s *RowStore) Update(ctx context.Context, table sheet.Table, row sheet.Row) error {
	if row.Number <= sheet.HeaderRow {
		return fmt.Errorf("sheets: fila %d de %q: %w", row.Number, table, domain.ErrNotFound)
	}
	vr := &gsheets.ValueRange{Values: toValues([][]any{row.Cells})}
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, a1(table, fmt.Sprintf("A%d", row.Number)), vr).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: actualizar fila %d de %q: %w", row.Number, table, err)
	}
	return nil
}

// Delete elimina la fila física con DeleteDimension; las siguientes suben.
func (s *RowStore) Delete(ctx context.Context, table sheet.Table, rowNumber int) error {
	if rowNumber <= sheet.HeaderRow {
		return fmt.Errorf("sheets: fila %d de %q: %w", rowNumber, table, domain.ErrNotFound)
	}
	sheetID, err := s.sheetID(ctx, table)
	if err != nil {
		return err
	}
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNumber - 1),
					EndIndex:   int64(rowNumber),
				},
			},
		}},
	}
	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: borrar fila %d de %q: %w", rowNumber, table, err)
	}
	return nil
}

func (s *RowStore) sheetID(ctx context.Context, table sheet.Table) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.sheetIDs[string(table)]; ok {
		return id, nil
	}
	ss, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: metadatos: %v: %w", err, domain.ErrTableUnavailable)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := s.sheetIDs[string(table)]
	if !ok {
		return 0, fmt.Errorf("sheets: pestaña %q: %w", table, domain.ErrTableUnavailable)
	}
	return id, nil
}

// a1 arma un rango A1 con el nombre de la pestaña entre comillas simples.
func a1(table sheet.Table, cells string) string {
	name := strings.ReplaceAll(string(table), "'", "''")
	return "'" + name + "'!" + cells
}

func toValues(rows [][]any) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		row := make([]interface{}, len(r))
		for j, v := range r {
			if v == nil {
				v = ""
			}
			row[j] = v
		}
		out[i] = row
	}
	return out
}
