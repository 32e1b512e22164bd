package normalize_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// ── Number ───────────────────────────────────────────────────────────────────

func TestNumber_FormatoBrasileno(t *testing.T) {
	cases := map[string]string{
		"1.234,56":     "1234.56",
		"R$ 1.234,56":  "1234.56",
		"  R$12,00 ":   "12",
		"1 234,5":      "1234.5",
		"10":           "10",
		"-3,5":         "-3.5",
		"1.000.000,01": "1000000.01",
		"":             "0",
		"   ":          "0",
		"abc":          "0",
		"R$":           "0",
		"12,34,56":     "0",
	}
	for in, want := range cases {
		assertDecimal(t, want, normalize.Number(in), "Number("+in+")")
	}
}

func TestNumber_ValoresNativos(t *testing.T) {
	assertDecimal(t, "42.5", normalize.Number(42.5), "float64")
	assertDecimal(t, "0", normalize.Number(0), "int cero")
	assertDecimal(t, "7", normalize.Number(int64(7)), "int64")
	assertDecimal(t, "0", normalize.Number(nil), "nil")
	assertDecimal(t, "0", normalize.Number(math.NaN()), "NaN")
	assertDecimal(t, "0", normalize.Number(math.Inf(1)), "+Inf")
	assertDecimal(t, "0", normalize.Number(true), "bool")
	assertDecimal(t, "9.99", normalize.Number(decimal.RequireFromString("9.99")), "decimal")
}

func TestInt_Piso(t *testing.T) {
	assert.Equal(t, int64(2), normalize.Int("2,9"))
	assert.Equal(t, int64(3), normalize.Int(3.0))
	assert.Equal(t, int64(-3), normalize.Int(-2.5))
	assert.Equal(t, int64(0), normalize.Int("x"))
}

// ── Date ─────────────────────────────────────────────────────────────────────

func TestDate_Formas(t *testing.T) {
	cases := map[string]string{
		"2026-01-31":          "2026-01-31",
		"31/01/2026":          "2026-01-31",
		"2026-01-31T10:00:00": "2026-01-31",
		" 2026-01-31 ":        "2026-01-31",
		"not a date":          "",
		"":                    "",
		"31-01-2026":          "",
		"1/2/2026":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Date(in, time.UTC), "Date(%q)", in)
	}
	assert.Equal(t, "", normalize.Date(nil, time.UTC))
	assert.Equal(t, "", normalize.Date(45000.0, time.UTC), "serial numérico no se interpreta")
}

func TestDate_Idempotente(t *testing.T) {
	once := normalize.Date("31/01/2026", time.UTC)
	assert.Equal(t, once, normalize.Date(once, time.UTC))
}

func TestDate_TimeUsaZonaDelEstablecimiento(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC del 1 de febrero es todavía 31 de enero en Brasil.
	ts := time.Date(2026, 2, 1, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-31", normalize.Date(ts, loc))
	assert.Equal(t, "2026-02-01", normalize.Date(ts, time.UTC))
	assert.Equal(t, "", normalize.Date(time.Time{}, loc))
}

// ── InRange ──────────────────────────────────────────────────────────────────

func TestInRange(t *testing.T) {
	assert.True(t, normalize.InRange("2026-01-10", "", ""))
	assert.True(t, normalize.InRange("2026-01-10", "2026-01-10", "2026-01-10"))
	assert.True(t, normalize.InRange("2026-01-10", "2026-01-01", ""))
	assert.True(t, normalize.InRange("2026-01-10", "", "2026-01-31"))
	assert.False(t, normalize.InRange("2026-01-10", "2026-01-11", ""))
	assert.False(t, normalize.InRange("2026-01-10", "", "2026-01-09"))
	assert.False(t, normalize.InRange("", "", ""), "fecha vacía nunca entra")
	assert.False(t, normalize.InRange("", "2026-01-01", "2026-12-31"))
}

// ── Bool / Active ────────────────────────────────────────────────────────────

func TestBoolYActive(t *testing.T) {
	for _, v := range []any{true, "TRUE", "1", "Sim", "yes", 1.0} {
		assert.True(t, normalize.Bool(v), "Bool(%v)", v)
	}
	for _, v := range []any{false, "FALSE", "0", "não", "", nil} {
		assert.False(t, normalize.Bool(v), "Bool(%v)", v)
	}
	assert.True(t, normalize.Active(""), "vacío cuenta como activo")
	assert.True(t, normalize.Active(nil))
	assert.False(t, normalize.Active("false"))
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-10", normalize.Today(now, time.UTC))
	assert.Equal(t, "2026-03-03", normalize.DaysAgo(7, now, time.UTC))
	assert.Equal(t, "2025-12-10", normalize.DaysAgo(90, now, time.UTC))
}
