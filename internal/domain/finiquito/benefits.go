package finiquito

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IndemnizacionLines breaks the statutory indemnity into up to three lines:
// whole salaries per year, twelfths per month, and three-hundred-sixtieths per
// leftover day. Each line rounds independently at the point of computation.
func (c *Calculator) IndemnizacionLines(salaryAvg decimal.Decimal, tiempoPago Tenure, include bool) []BenefitLine {
	if !include {
		return nil
	}

	var lines []BenefitLine
	if tiempoPago.Years > 0 {
		years := decimal.NewFromInt(int64(tiempoPago.Years))
		lines = append(lines, BenefitLine{
			Concept:     ConceptIndemnizacionAnos,
			Description: fmt.Sprintf("Indemnización: %d Años", tiempoPago.Years),
			BaseAmount:  salaryAvg,
			Factor:      years,
			Years:       tiempoPago.Years,
			Amount:      roundMoney(salaryAvg.Mul(years)),
		})
	}
	if tiempoPago.Months > 0 {
		months := decimal.NewFromInt(int64(tiempoPago.Months))
		twelfth := salaryAvg.Div(decimal.NewFromInt(12))
		lines = append(lines, BenefitLine{
			Concept:     ConceptIndemnizacionMeses,
			Description: fmt.Sprintf("Indemnización: %d Meses (Duodécimas)", tiempoPago.Months),
			BaseAmount:  salaryAvg,
			Months:      tiempoPago.Months,
			Amount:      roundMoney(twelfth.Mul(months)),
		})
	}
	if tiempoPago.Days > 0 {
		days := decimal.NewFromInt(int64(tiempoPago.Days))
		perDay := salaryAvg.Div(decimal.NewFromInt(int64(c.constants.DaysInYear)))
		lines = append(lines, BenefitLine{
			Concept:     ConceptIndemnizacionDias,
			Description: fmt.Sprintf("Indemnización: %d Días (Proporcional)", tiempoPago.Days),
			BaseAmount:  salaryAvg,
			Days:        tiempoPago.Days,
			Amount:      roundMoney(perDay.Mul(days)),
		})
	}
	return lines
}

// Desahucio is three average salaries owed for untimely dismissal. A zero line
// comes back when not applicable; the orchestrator drops zero lines.
func (c *Calculator) Desahucio(salaryAvg decimal.Decimal, include bool) BenefitLine {
	if !include {
		return BenefitLine{Concept: ConceptDesahucio, Description: "Desahucio", BaseAmount: decimal.Zero}
	}
	return BenefitLine{
		Concept:     ConceptDesahucio,
		Description: "Desahucio (3 Meses de Sueldo)",
		BaseAmount:  salaryAvg,
		Factor:      c.constants.DesahucioFactor,
		Amount:      roundMoney(salaryAvg.Mul(c.constants.DesahucioFactor)),
	}
}

// Aguinaldo prorates the annual bonus over the days elapsed in the termination
// year, counting from January 1 inclusive, against the 360-day year.
func (c *Calculator) Aguinaldo(salaryAvg decimal.Decimal, payUntilDate time.Time, exclude bool) BenefitLine {
	if exclude {
		return BenefitLine{
			Concept:     ConceptAguinaldo,
			Description: "AGUINALDO (Ya fue pagado)",
			BaseAmount:  decimal.Zero,
		}
	}

	yearStart := time.Date(payUntilDate.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	daysWorked := int(dateOnly(payUntilDate).Sub(yearStart).Hours()/24) + 1
	proportion := decimal.NewFromInt(int64(daysWorked)).Div(decimal.NewFromInt(int64(c.constants.DaysInYear)))

	return BenefitLine{
		Concept:     ConceptAguinaldo,
		Description: fmt.Sprintf("Aguinaldo Gestión %d (%d días)", payUntilDate.Year(), daysWorked),
		BaseAmount:  salaryAvg,
		Factor:      proportion,
		Days:        daysWorked,
		Amount:      roundMoney(salaryAvg.Mul(proportion)),
	}
}

// Vacaciones pays out the untaken vacation balance at one thirtieth of the
// average salary per day. The balance supports half days.
func (c *Calculator) Vacaciones(salaryAvg, daysBalance decimal.Decimal, include bool) BenefitLine {
	if !include || !daysBalance.IsPositive() {
		return BenefitLine{Concept: ConceptVacaciones, Description: "Vacaciones", BaseAmount: decimal.Zero}
	}
	daily := salaryAvg.Div(decimal.NewFromInt(int64(c.constants.DaysInMonth)))
	return BenefitLine{
		Concept:     ConceptVacaciones,
		Description: fmt.Sprintf("Vacaciones (Saldo: %s días)", daysBalance.String()),
		BaseAmount:  salaryAvg,
		Factor:      daysBalance,
		Amount:      roundMoney(daily.Mul(daysBalance)),
	}
}

// Prima is the quinquenio seniority premium: 25% of one average salary per
// year of payable tenure, with months and days counted fractionally.
func (c *Calculator) Prima(salaryAvg decimal.Decimal, tiempoPago Tenure) BenefitLine {
	yearsFactor := decimal.NewFromInt(int64(tiempoPago.Years)).
		Add(decimal.NewFromInt(int64(tiempoPago.Months)).Div(decimal.NewFromInt(12))).
		Add(decimal.NewFromInt(int64(tiempoPago.Days)).Div(decimal.NewFromInt(int64(c.constants.DaysInYear))))

	return BenefitLine{
		Concept:     ConceptPrimaLegal,
		Description: "Prima Legal (Quinquenio)",
		BaseAmount:  salaryAvg,
		Factor:      yearsFactor,
		Amount:      roundMoney(salaryAvg.Mul(yearsFactor).Mul(c.constants.PrimaRate)),
	}
}

// RCIVA withholds 13% of the vacation payout actually granted. It reads the
// vacation line's amount rather than recomputing, so disabling the vacation
// benefit also zeroes this deduction.
func (c *Calculator) RCIVA(vacationAmount decimal.Decimal, active bool) (BenefitLine, bool) {
	if !active || !vacationAmount.IsPositive() {
		return BenefitLine{}, false
	}
	return BenefitLine{
		Concept:     ConceptRCIVAVacaciones,
		Description: "RC-IVA (13% sobre Vacaciones)",
		BaseAmount:  vacationAmount,
		Factor:      c.constants.RCIVARate,
		Amount:      roundMoney(vacationAmount.Mul(c.constants.RCIVARate)),
	}, true
}
