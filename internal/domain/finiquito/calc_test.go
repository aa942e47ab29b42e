package finiquito

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func threeMonths(t *testing.T, totals ...string) []PayrollMonth {
	t.Helper()
	months := make([]PayrollMonth, 0, len(totals))
	names := []string{"2023-09", "2023-10", "2023-11"}
	for i, total := range totals {
		amount := mustDec(total)
		months = append(months, PayrollMonth{
			MonthName:   names[i%len(names)],
			YearMonth:   names[i%len(names)],
			HaberBasico: amount,
			TotalGanado: amount,
		})
	}
	return months
}

func testEmployee(t *testing.T, hired string) Employee {
	t.Helper()
	return Employee{
		CI:           "1234567",
		Name:         "Juan Pérez",
		Empresa:      "Empresa Demo S.A.",
		Unidad:       "Administración",
		Ocupacion:    "Contador",
		FechaIngreso: testDate(t, hired),
	}
}

func findLine(lines []BenefitLine, concept string) (BenefitLine, bool) {
	for _, l := range lines {
		if l.Concept == concept {
			return l, true
		}
	}
	return BenefitLine{}, false
}

func TestAverageSalary(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	avg, err := calc.AverageSalary(threeMonths(t, "100", "200", "300"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, avg, "200.00")

	avg, err = calc.AverageSalary(threeMonths(t, "3500.10", "3500.10", "3500.11"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10500.31 / 3 = 3500.10333..., rounds half-up at centavos.
	assertAmount(t, avg, "3500.10")
}

func TestAverageSalaryRequiresThreeMonths(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	if _, err := calc.AverageSalary(threeMonths(t, "100", "200")); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 2 months, got %v", err)
	}
	if _, err := calc.AverageSalary(threeMonths(t, "100", "200", "300", "400")); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 4 months, got %v", err)
	}
}

func TestCalculateMinimumTenureOverride(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	noBenefits := &MotivoConfig{Code: MotivoRenuncia, Description: "Renuncia", IsActive: true}

	// 2024-01-01 → 2024-04-01 is exactly 3 months: 90 conventional days.
	atBoundary, err := calc.Calculate(
		testEmployee(t, "2024-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2024-04-01"), MotivoRetiro: MotivoRenuncia},
		ManualInputs{},
		noBenefits,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atBoundary.TiempoPago.TotalDays != 90 {
		t.Fatalf("expected 90 conventional days, got %d", atBoundary.TiempoPago.TotalDays)
	}
	if _, ok := findLine(atBoundary.Benefits, ConceptIndemnizacionMeses); ok {
		t.Fatal("90 days must not force indemnity on")
	}

	// One more day crosses the statutory threshold.
	overBoundary, err := calc.Calculate(
		testEmployee(t, "2024-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2024-04-02"), MotivoRetiro: MotivoRenuncia},
		ManualInputs{},
		noBenefits,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overBoundary.TiempoPago.TotalDays != 91 {
		t.Fatalf("expected 91 conventional days, got %d", overBoundary.TiempoPago.TotalDays)
	}
	if _, ok := findLine(overBoundary.Benefits, ConceptIndemnizacionMeses); !ok {
		t.Fatal("91 days must force the indemnity override")
	}
}

func TestCalculateDismissalForcesDesahucio(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	// Configuration says no desahucio, but an unjustified dismissal gets it anyway.
	cfg := &MotivoConfig{Code: "DESPIDO_INTEMPESTIVO", Description: "Despido", Aguinaldo: true, IsActive: true}
	result, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-02-01"), MotivoRetiro: "DESPIDO_INTEMPESTIVO"},
		ManualInputs{},
		cfg,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, ok := findLine(result.Benefits, ConceptDesahucio)
	if !ok {
		t.Fatal("dismissal must force desahucio on")
	}
	assertAmount(t, line.Amount, "9000.00")

	// A justified dismissal keeps both overrides off.
	justified, err := calc.Calculate(
		testEmployee(t, "2020-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-02-01"), MotivoRetiro: "DESPIDO JUSTIFICADO"},
		ManualInputs{},
		&MotivoConfig{Code: "DESPIDO JUSTIFICADO", DiaMenos: true, Aguinaldo: true, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findLine(justified.Benefits, ConceptDesahucio); ok {
		t.Fatal("justified dismissal must not receive desahucio")
	}
	if _, ok := findLine(justified.Benefits, ConceptIndemnizacionAnos); ok {
		t.Fatal("justified dismissal must not receive forced indemnity")
	}
}

func TestCalculateAguinaldoZeroLineWhenAlreadyPaid(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	cfg := &MotivoConfig{Code: MotivoRenuncia, Aguinaldo: true, IsActive: true}

	result, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "12000", "12000", "12000"),
		CaseParameters{
			PayUntilDate:         testDate(t, "2023-06-30"),
			MotivoRetiro:         MotivoRenuncia,
			AguinaldoAlreadyPaid: true,
		},
		ManualInputs{},
		cfg,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line, ok := findLine(result.Benefits, ConceptAguinaldo)
	if !ok {
		t.Fatal("already-paid aguinaldo must still emit a zero line for audit")
	}
	if !line.Amount.IsZero() {
		t.Fatalf("expected zero aguinaldo, got %s", line.Amount)
	}
}

func TestCalculateAguinaldoProrated(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	cfg := &MotivoConfig{Code: MotivoRenuncia, Aguinaldo: true, IsActive: true}

	result, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "12000", "12000", "12000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-06-30"), MotivoRetiro: MotivoRenuncia},
		ManualInputs{},
		cfg,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, ok := findLine(result.Benefits, ConceptAguinaldo)
	if !ok {
		t.Fatal("expected aguinaldo line")
	}
	assertAmount(t, line.Amount, "6033.33")
}

func TestCalculateQuinquenioPrima(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	cfg := &MotivoConfig{Code: MotivoQuinquenio, Description: "Quinquenio", Indemnizacion: true, IsActive: true}

	result, err := calc.Calculate(
		testEmployee(t, "2019-01-01"),
		threeMonths(t, "4000", "4000", "4000"),
		CaseParameters{PayUntilDate: testDate(t, "2024-01-01"), MotivoRetiro: MotivoQuinquenio},
		ManualInputs{},
		cfg,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prima, ok := findLine(result.Benefits, ConceptPrimaLegal)
	if !ok {
		t.Fatal("quinquenio case must include the prima line")
	}
	// 5 years exactly: 4000 * 5 * 0.25.
	assertAmount(t, prima.Amount, "5000.00")

	indemnity, ok := findLine(result.Benefits, ConceptIndemnizacionAnos)
	if !ok {
		t.Fatal("expected indemnity years line")
	}
	assertAmount(t, indemnity.Amount, "20000.00")
}

func TestCalculateRCIVAFollowsVacationLine(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	manual := ManualInputs{VacationDaysBalance: mustDec("10"), RCIVAFlag: true}

	withVacation, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-03-01"), MotivoRetiro: MotivoRenuncia},
		manual,
		&MotivoConfig{Code: MotivoRenuncia, Vacaciones: true, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rcIva, ok := findLine(withVacation.Deductions, ConceptRCIVAVacaciones)
	if !ok {
		t.Fatal("expected RC-IVA deduction when vacation is paid")
	}
	// Vacation: 3000/30*10 = 1000; RC-IVA 13%.
	assertAmount(t, rcIva.Amount, "130.00")

	// Vacation flag off: the toggle alone must not create a withholding.
	withoutVacation, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-03-01"), MotivoRetiro: MotivoRenuncia},
		manual,
		&MotivoConfig{Code: MotivoRenuncia, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findLine(withoutVacation.Deductions, ConceptRCIVAVacaciones); ok {
		t.Fatal("RC-IVA must be absent when the vacation line is zero")
	}
}

func TestCalculateNetPaymentCanGoNegative(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	result, err := calc.Calculate(
		testEmployee(t, "2024-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{
			PayUntilDate:         testDate(t, "2024-02-01"),
			MotivoRetiro:         MotivoRenuncia,
			AguinaldoAlreadyPaid: true,
		},
		ManualInputs{
			Anticipos: []AdjustmentLine{{Label: "Anticipo enero", Amount: mustDec("500.00")}},
		},
		&MotivoConfig{Code: MotivoRenuncia, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.NetPayment.Equal(mustDec("-500.00")) {
		t.Fatalf("expected net payment -500.00, got %s", result.NetPayment)
	}
	if !containsWarning(result.Warnings, WarningNegativeNet) {
		t.Fatalf("expected %s warning, got %v", WarningNegativeNet, result.Warnings)
	}
}

func TestCalculateManualAdjustments(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	result, err := calc.Calculate(
		testEmployee(t, "2023-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-02-15"), MotivoRetiro: MotivoRenuncia},
		ManualInputs{
			BonoExtraordinarioMonto: mustDec("750.00"),
			Anticipos: []AdjustmentLine{
				{Label: "Anticipo enero", Amount: mustDec("200.00")},
				{Label: "Anticipo cero", Amount: decimal.Zero},
			},
			Deducciones: []AdjustmentLine{
				{Label: "Préstamo interno", Amount: mustDec("150.00")},
			},
		},
		&MotivoConfig{Code: MotivoRenuncia, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bono, ok := findLine(result.Benefits, ConceptBonoExtraordinario)
	if !ok {
		t.Fatal("expected extraordinary bonus line")
	}
	if bono.Description != "Bono Extraordinario" {
		t.Fatalf("expected default label, got %q", bono.Description)
	}
	assertAmount(t, bono.Amount, "750.00")

	if len(result.Deductions) != 2 {
		t.Fatalf("expected 2 deduction lines (zero advance dropped), got %d", len(result.Deductions))
	}
	assertAmount(t, result.TotalDeductions, "350.00")
}

func TestCalculateDefaultConfigWarning(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	result, err := calc.Calculate(
		testEmployee(t, "2022-01-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-06-01"), MotivoRetiro: "MOTIVO_DESCONOCIDO"},
		ManualInputs{},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsWarning(result.Warnings, WarningDefaultMotivoConfig) {
		t.Fatalf("expected %s warning, got %v", WarningDefaultMotivoConfig, result.Warnings)
	}
	// Fallback policy keeps indemnity on.
	if _, ok := findLine(result.Benefits, ConceptIndemnizacionAnos); !ok {
		t.Fatal("fallback policy must include indemnity")
	}
}

func TestCalculatePayableTenureDiffersFromReal(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	// A prior five-year settlement reset the accrual clock in 2021.
	result, err := calc.Calculate(
		testEmployee(t, "2016-03-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{
			PayUntilDate:         testDate(t, "2023-03-01"),
			MotivoRetiro:         MotivoRenuncia,
			CalculationStartDate: testDate(t, "2021-03-01"),
		},
		ManualInputs{},
		&MotivoConfig{Code: MotivoRenuncia, Indemnizacion: true, IsActive: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AntiguedadReal.Years != 7 {
		t.Fatalf("expected 7 real years, got %d", result.AntiguedadReal.Years)
	}
	if result.TiempoPago.Years != 2 {
		t.Fatalf("expected 2 payable years, got %d", result.TiempoPago.Years)
	}
	years, ok := findLine(result.Benefits, ConceptIndemnizacionAnos)
	if !ok {
		t.Fatal("expected indemnity years line")
	}
	// Indemnity accrues over payable tenure only.
	assertAmount(t, years.Amount, "6000.00")
}

func TestCalculateInvalidRangePropagates(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	_, err := calc.Calculate(
		testEmployee(t, "2023-05-01"),
		threeMonths(t, "3000", "3000", "3000"),
		CaseParameters{PayUntilDate: testDate(t, "2023-04-01"), MotivoRetiro: MotivoRenuncia},
		ManualInputs{},
		nil,
	)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestCalculateDeterminism(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())
	employee := testEmployee(t, "2018-07-16")
	months := threeMonths(t, "4321.10", "4400.55", "4515.35")
	params := CaseParameters{PayUntilDate: testDate(t, "2023-11-20"), MotivoRetiro: MotivoRetiroIndirecto}
	manual := ManualInputs{VacationDaysBalance: mustDec("12.5"), RCIVAFlag: true}
	cfg := &MotivoConfig{Code: MotivoRetiroIndirecto, Indemnizacion: true, Aguinaldo: true, Desahucio: true, Vacaciones: true, IsActive: true}

	first, err := calc.Calculate(employee, months, params, manual, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := calc.Calculate(employee, months, params, manual, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	normalize := func(r CalculationResult) string {
		r.CalculationID = ""
		r.CalculatedAt = time.Time{}
		payload, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return string(payload)
	}

	if normalize(first) != normalize(second) {
		t.Fatal("identical inputs must produce identical results")
	}
	if first.CalculationID == second.CalculationID {
		t.Fatal("each calculation must receive a fresh id")
	}
}

func containsWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}
