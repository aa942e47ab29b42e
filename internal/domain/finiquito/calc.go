package finiquito

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calculator computes Bolivian termination settlements. It is stateless apart
// from the injected legal constants, so a single instance is safe to share
// across concurrent requests.
type Calculator struct {
	constants LaborConstants
}

func NewCalculator(constants LaborConstants) *Calculator {
	return &Calculator{constants: constants}
}

// AverageSalary averages TotalGanado over exactly the configured number of
// payroll months (three), rounded half-up to centavos.
func (c *Calculator) AverageSalary(months []PayrollMonth) (decimal.Decimal, error) {
	if len(months) != c.constants.MonthsForAverage {
		return decimal.Zero, ErrInsufficientData
	}
	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.TotalGanado)
	}
	return roundMoney(total.Div(decimal.NewFromInt(int64(c.constants.MonthsForAverage)))), nil
}

// Calculate runs the full settlement for one termination case. motivoConfig
// may be nil, in which case the documented fallback policy applies and a
// warning is recorded on the result. The call is deterministic for identical
// inputs, aside from the freshly generated id and timestamp.
func (c *Calculator) Calculate(
	employee Employee,
	payrollMonths []PayrollMonth,
	caseParams CaseParameters,
	manual ManualInputs,
	motivoConfig *MotivoConfig,
) (CalculationResult, error) {
	var warnings []string

	cfg := MotivoConfig{}
	if motivoConfig != nil {
		cfg = *motivoConfig
	} else {
		cfg = FallbackMotivoConfig(caseParams.MotivoRetiro)
		warnings = append(warnings, WarningDefaultMotivoConfig)
	}

	diaMenos := cfg.DiaMenos
	indemFlag := cfg.Indemnizacion
	desahucioFlag := cfg.Desahucio
	aguinaldoFlag := cfg.Aguinaldo
	vacacionesFlag := cfg.Vacaciones

	calcStart := caseParams.CalculationStartDate
	if calcStart.IsZero() {
		calcStart = employee.FechaIngreso
	}

	antiguedadReal, err := c.ComputeTenure(employee.FechaIngreso, caseParams.PayUntilDate, diaMenos)
	if err != nil {
		return CalculationResult{}, err
	}
	tiempoPago, err := c.ComputeTenure(calcStart, caseParams.PayUntilDate, diaMenos)
	if err != nil {
		return CalculationResult{}, err
	}

	// Statutory overrides layered on top of the stored configuration. These
	// outrank whatever the flags say; see reason.go for the matching rules.
	justified := IsJustifiedDismissal(caseParams.MotivoRetiro)
	if tiempoPago.TotalDays > c.constants.MinTenureDays && !justified {
		indemFlag = true
	}
	if IsDismissal(caseParams.MotivoRetiro) && !justified {
		desahucioFlag = true
	}

	salaryAvg, err := c.AverageSalary(payrollMonths)
	if err != nil {
		return CalculationResult{}, err
	}

	var benefits []BenefitLine
	var deductions []BenefitLine

	benefits = append(benefits, c.IndemnizacionLines(salaryAvg, tiempoPago, indemFlag)...)

	if line := c.Desahucio(salaryAvg, desahucioFlag); line.Amount.IsPositive() {
		benefits = append(benefits, line)
	}

	// The zero-amount aguinaldo line is kept when the bonus was already paid
	// outside this settlement, so the document shows why nothing is owed.
	excludeAguinaldo := caseParams.AguinaldoAlreadyPaid || !aguinaldoFlag
	aguinaldo := c.Aguinaldo(salaryAvg, caseParams.PayUntilDate, excludeAguinaldo)
	if aguinaldo.Amount.IsPositive() || caseParams.AguinaldoAlreadyPaid {
		benefits = append(benefits, aguinaldo)
	}

	vacaciones := c.Vacaciones(salaryAvg, manual.VacationDaysBalance, vacacionesFlag)
	if vacaciones.Amount.IsPositive() {
		benefits = append(benefits, vacaciones)
	}

	if IsQuinquenio(caseParams.MotivoRetiro) {
		if prima := c.Prima(salaryAvg, tiempoPago); prima.Amount.IsPositive() {
			benefits = append(benefits, prima)
		}
	}

	if manual.BonoExtraordinarioMonto.IsPositive() {
		label := manual.BonoExtraordinarioLabel
		if label == "" {
			label = "Bono Extraordinario"
		}
		benefits = append(benefits, BenefitLine{
			Concept:     ConceptBonoExtraordinario,
			Description: label,
			BaseAmount:  manual.BonoExtraordinarioMonto,
			Amount:      manual.BonoExtraordinarioMonto,
		})
	}

	for _, a := range manual.Anticipos {
		if a.Amount.IsPositive() {
			deductions = append(deductions, BenefitLine{
				Concept:     ConceptAnticipo,
				Description: a.Label,
				BaseAmount:  a.Amount,
				Amount:      a.Amount,
			})
		}
	}
	for _, d := range manual.Deducciones {
		if d.Amount.IsPositive() {
			deductions = append(deductions, BenefitLine{
				Concept:     ConceptDeduccion,
				Description: d.Label,
				BaseAmount:  d.Amount,
				Amount:      d.Amount,
			})
		}
	}

	// RC-IVA is withheld against the vacation line that was actually paid,
	// never recomputed independently of it.
	if rcIva, ok := c.RCIVA(vacaciones.Amount, manual.RCIVAFlag); ok {
		deductions = append(deductions, rcIva)
	}

	totalBenefits := sumAmounts(benefits)
	totalDeductions := sumAmounts(deductions)
	netPayment := totalBenefits.Sub(totalDeductions)
	if netPayment.IsNegative() {
		warnings = append(warnings, WarningNegativeNet)
	}

	return CalculationResult{
		CalculationID:   uuid.NewString(),
		Employee:        employee,
		CaseParams:      caseParams,
		AntiguedadReal:  antiguedadReal,
		TiempoPago:      tiempoPago,
		PayrollMonths:   payrollMonths,
		SalaryAverage:   salaryAvg,
		ManualInputs:    manual,
		MotivoConfig:    cfg,
		Benefits:        benefits,
		Deductions:      deductions,
		TotalBenefits:   totalBenefits,
		TotalDeductions: totalDeductions,
		NetPayment:      netPayment,
		Warnings:        warnings,
		CalculatedAt:    time.Now().UTC(),
	}, nil
}

func sumAmounts(lines []BenefitLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// roundMoney rounds to centavos. Amounts here are never negative, so
// Decimal.Round (half away from zero) is exactly round-half-up.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
