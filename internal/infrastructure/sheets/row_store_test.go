package sheets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/sheet"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/sheets"
)

const testSpreadsheet = "planilha-test"

// fakeAPI simula los endpoints de la API v4 que usa el store.
type fakeAPI struct {
	lastQuery  map[string]string
	lastPath   string
	lastBody   map[string]any
	valuesByRg map[string][][]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lastPath = r.URL.Path
	f.lastQuery = map[string]string{}
	for k, v := range r.URL.Query() {
		f.lastQuery[k] = v[0]
	}
	f.lastBody = nil
	if body, _ := io.ReadAll(r.Body); len(body) > 0 {
		_ = json.Unmarshal(body, &f.lastBody)
	}
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		rng := r.URL.Path[strings.Index(r.URL.Path, "/values/")+len("/values/"):]
		values, ok := f.valuesByRg[rng]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Unable to parse range"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"range": rng, "values": values})
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sheets": []any{
				map[string]any{"properties": map[string]any{"sheetId": 11, "title": "vendas"}},
				map[string]any{"properties": map[string]any{"sheetId": 42, "title": "despesas"}},
			},
		})
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

func newStore(t *testing.T, api *fakeAPI) *sheets.RowStore {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	svc, err := gsheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return sheets.NewWithService(svc, testSpreadsheet)
}

func TestRows_LeeDesdeLaFila2SinFormato(t *testing.T) {
	api := &fakeAPI{valuesByRg: map[string][][]any{
		"'vendas'!A2:Z": {
			{"1767225600000", "2026-01-01", 25.5, "pix"},
			{},
			{"1767225600001", "01/01/2026", "R$ 10,00"},
		},
	}}
	s := newStore(t, api)

	rows, err := s.Rows(context.Background(), sheet.TableSales)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 4, rows[2].Number, "filas vacías intermedias conservan la numeración")
	assert.Equal(t, 25.5, rows[0].Cells[sheet.SaleTotal])

	assert.Equal(t, "UNFORMATTED_VALUE", api.lastQuery["valueRenderOption"])
	assert.Equal(t, "FORMATTED_STRING", api.lastQuery["dateTimeRenderOption"])
}

func TestRows_PestanaAusenteEsTablaNoDisponible(t *testing.T) {
	s := newStore(t, &fakeAPI{valuesByRg: map[string][][]any{}})

	_, err := s.Rows(context.Background(), sheet.TableExpenses)
	assert.ErrorIs(t, err, domain.ErrTableUnavailable)
}

func TestAppend_RawInsertRows(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api)

	err := s.Append(context.Background(), sheet.TableSales, []any{"1", "2026-01-01", 10.0, "dinheiro", nil})
	require.NoError(t, err)

	assert.Contains(t, api.lastPath, ":append")
	assert.Equal(t, "RAW", api.lastQuery["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", api.lastQuery["insertDataOption"])
	require.NotNil(t, api.lastBody)
	values := api.lastBody["values"].([]any)
	require.Len(t, values, 1)
	assert.Equal(t, "", values[0].([]any)[4], "nil se envía como celda vacía")
}

func TestDelete_ResuelveSheetIdPorTitulo(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(t, api)

	require.NoError(t, s.Delete(context.Background(), sheet.TableExpenses, 5))

	assert.Contains(t, api.lastPath, ":batchUpdate")
	reqs := api.lastBody["requests"].([]any)
	dr := reqs[0].(map[string]any)["deleteDimension"].(map[string]any)["range"].(map[string]any)
	assert.EqualValues(t, 42, dr["sheetId"])
	assert.EqualValues(t, 4, dr["startIndex"])
	assert.EqualValues(t, 5, dr["endIndex"])
	assert.Equal(t, "ROWS", dr["dimension"])
}

func TestDelete_PestanaDesconocida(t *testing.T) {
	s := newStore(t, &fakeAPI{})

	err := s.Delete(context.Background(), sheet.TableProducts, 3)
	assert.ErrorIs(t, err, domain.ErrTableUnavailable)
	assert.ErrorIs(t, s.Delete(context.Background(), sheet.TableSales, 1), domain.ErrNotFound)
}
