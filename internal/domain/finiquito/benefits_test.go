package finiquito

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustDec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Fatalf("amount mismatch: got %s want %s", got.StringFixed(2), want)
	}
}

func TestIndemnizacionLines(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	tenure := Tenure{Years: 2, Months: 3, Days: 10, TotalDays: 820}

	lines := calc.IndemnizacionLines(mustDec("9000.00"), tenure, true)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	assertAmount(t, lines[0].Amount, "18000.00")
	assertAmount(t, lines[1].Amount, "2250.00")
	assertAmount(t, lines[2].Amount, "250.00")

	if lines[0].Concept != ConceptIndemnizacionAnos || lines[1].Concept != ConceptIndemnizacionMeses || lines[2].Concept != ConceptIndemnizacionDias {
		t.Fatalf("unexpected concepts: %s %s %s", lines[0].Concept, lines[1].Concept, lines[2].Concept)
	}
	if lines[1].Months != 3 || lines[2].Days != 10 {
		t.Fatalf("audit annotations missing: months=%d days=%d", lines[1].Months, lines[2].Days)
	}
}

func TestIndemnizacionLinesSkipsZeroUnits(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	lines := calc.IndemnizacionLines(mustDec("5000"), Tenure{Months: 7, TotalDays: 210}, true)
	if len(lines) != 1 {
		t.Fatalf("expected only the months line, got %d lines", len(lines))
	}
	assertAmount(t, lines[0].Amount, "2916.67")

	if lines := calc.IndemnizacionLines(mustDec("5000"), Tenure{Years: 4, TotalDays: 1440}, false); lines != nil {
		t.Fatalf("expected no lines when excluded, got %d", len(lines))
	}
}

func TestDesahucio(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	line := calc.Desahucio(mustDec("4500.50"), true)
	assertAmount(t, line.Amount, "13501.50")

	excluded := calc.Desahucio(mustDec("4500.50"), false)
	if !excluded.Amount.IsZero() {
		t.Fatalf("excluded desahucio must be zero, got %s", excluded.Amount)
	}
}

func TestAguinaldoProration(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	line := calc.Aguinaldo(mustDec("12000.00"), testDate(t, "2023-06-30"), false)
	if line.Days != 181 {
		t.Fatalf("expected 181 elapsed days, got %d", line.Days)
	}
	assertAmount(t, line.Amount, "6033.33")

	paid := calc.Aguinaldo(mustDec("12000.00"), testDate(t, "2023-06-30"), true)
	if !paid.Amount.IsZero() {
		t.Fatalf("already-paid aguinaldo must be a zero line, got %s", paid.Amount)
	}
	if paid.Description != "AGUINALDO (Ya fue pagado)" {
		t.Fatalf("unexpected description %q", paid.Description)
	}
}

func TestVacaciones(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	line := calc.Vacaciones(mustDec("3000.00"), mustDec("10.5"), true)
	assertAmount(t, line.Amount, "1050.00")

	if got := calc.Vacaciones(mustDec("3000.00"), mustDec("10.5"), false); !got.Amount.IsZero() {
		t.Fatalf("excluded vacation must be zero, got %s", got.Amount)
	}
	if got := calc.Vacaciones(mustDec("3000.00"), decimal.Zero, true); !got.Amount.IsZero() {
		t.Fatalf("zero balance must yield zero, got %s", got.Amount)
	}
}

func TestPrima(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	line := calc.Prima(mustDec("1000.00"), Tenure{Years: 1, Months: 6, TotalDays: 540})
	assertAmount(t, line.Amount, "375.00")

	whole := calc.Prima(mustDec("4000.00"), Tenure{Years: 5, TotalDays: 1800})
	assertAmount(t, whole.Amount, "5000.00")
}

func TestRCIVA(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	line, ok := calc.RCIVA(mustDec("1050.00"), true)
	if !ok {
		t.Fatal("expected RC-IVA line")
	}
	assertAmount(t, line.Amount, "136.50")

	if _, ok := calc.RCIVA(mustDec("1050.00"), false); ok {
		t.Fatal("inactive RC-IVA must not produce a line")
	}
	if _, ok := calc.RCIVA(decimal.Zero, true); ok {
		t.Fatal("zero vacation amount must not produce a line")
	}
}
