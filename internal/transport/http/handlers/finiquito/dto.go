package finiquitohandler

import (
	"time"

	"finiquitos/internal/domain/finiquito"
	"finiquitos/internal/transport/http/shared"
)

// Request payloads carry dates and money as strings; exact decimals never
// pass through float64 on the way in.

type employeePayload struct {
	CI              string `json:"ci"`
	Extension       string `json:"extension"`
	Name            string `json:"name"`
	Empresa         string `json:"empresa"`
	Unidad          string `json:"unidad"`
	Ocupacion       string `json:"ocupacion"`
	FechaIngreso    string `json:"fechaIngreso"`
	FechaNacimiento string `json:"fechaNacimiento"`
	EstadoCivil     string `json:"estadoCivil"`
	Domicilio       string `json:"domicilio"`
}

type payrollMonthPayload struct {
	MonthName      string `json:"monthName"`
	YearMonth      string `json:"yearMonth"`
	HaberBasico    string `json:"haberBasico"`
	BonoAntiguedad string `json:"bonoAntiguedad"`
	OtrosBonos     string `json:"otrosBonos"`
	TotalGanado    string `json:"totalGanado"`
}

type caseParamsPayload struct {
	PayUntilDate         string `json:"payUntilDate"`
	RequestDate          string `json:"requestDate"`
	MotivoRetiro         string `json:"motivoRetiro"`
	CalculationStartDate string `json:"calculationStartDate"`
	QuinquenioStartDate  string `json:"quinquenioStartDate"`
	AguinaldoAlreadyPaid bool   `json:"aguinaldoAlreadyPaid"`
}

type adjustmentPayload struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type manualInputsPayload struct {
	VacationDaysBalance     string              `json:"vacationDaysBalance"`
	RCIVAFlag               bool                `json:"rcIvaFlag"`
	BonoExtraordinarioMonto string              `json:"bonoExtraordinarioMonto"`
	BonoExtraordinarioLabel string              `json:"bonoExtraordinarioLabel"`
	Anticipos               []adjustmentPayload `json:"anticipos"`
	Deducciones             []adjustmentPayload `json:"deducciones"`
}

type calculateRequest struct {
	Employee      employeePayload       `json:"employee"`
	PayrollMonths []payrollMonthPayload `json:"payrollMonths"`
	CaseParams    caseParamsPayload     `json:"caseParams"`
	ManualInputs  manualInputsPayload   `json:"manualInputs"`
}

type motivoConfigPayload struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiaMenos      bool   `json:"diaMenosFlag"`
	Indemnizacion bool   `json:"indemnizacionFlag"`
	Aguinaldo     bool   `json:"aguinaldoFlag"`
	Desahucio     bool   `json:"desahucioFlag"`
	Vacaciones    bool   `json:"vacacionesFlag"`
	IsActive      bool   `json:"isActive"`
}

func (p employeePayload) toDomain(v *shared.Validator) finiquito.Employee {
	v.Required("employee.ci", p.CI, "is required")
	v.Required("employee.name", p.Name, "is required")
	v.Required("employee.empresa", p.Empresa, "is required")
	ingreso, _ := v.Date("employee.fechaIngreso", p.FechaIngreso)
	// Birth date only appears on the printed document.
	var nacimiento time.Time
	if p.FechaNacimiento != "" {
		nacimiento, _ = v.Date("employee.fechaNacimiento", p.FechaNacimiento)
	}

	return finiquito.Employee{
		CI:              p.CI,
		Extension:       p.Extension,
		Name:            p.Name,
		Empresa:         p.Empresa,
		Unidad:          p.Unidad,
		Ocupacion:       p.Ocupacion,
		FechaIngreso:    ingreso,
		FechaNacimiento: nacimiento,
		EstadoCivil:     p.EstadoCivil,
		Domicilio:       p.Domicilio,
	}
}

func (p payrollMonthPayload) toDomain(field string, v *shared.Validator) finiquito.PayrollMonth {
	haber, _ := v.Decimal(field+".haberBasico", p.HaberBasico)
	bono, _ := v.Decimal(field+".bonoAntiguedad", p.BonoAntiguedad)
	otros, _ := v.Decimal(field+".otrosBonos", p.OtrosBonos)
	total, _ := v.Decimal(field+".totalGanado", p.TotalGanado)
	v.Required(field+".yearMonth", p.YearMonth, "is required")

	return finiquito.PayrollMonth{
		MonthName:      p.MonthName,
		YearMonth:      p.YearMonth,
		HaberBasico:    haber,
		BonoAntiguedad: bono,
		OtrosBonos:     otros,
		TotalGanado:    total,
	}
}

func (p caseParamsPayload) toDomain(v *shared.Validator) finiquito.CaseParameters {
	v.Required("caseParams.motivoRetiro", p.MotivoRetiro, "is required")
	payUntil, _ := v.Date("caseParams.payUntilDate", p.PayUntilDate)
	request, _ := v.Date("caseParams.requestDate", p.RequestDate)

	params := finiquito.CaseParameters{
		PayUntilDate:         payUntil,
		RequestDate:          request,
		MotivoRetiro:         p.MotivoRetiro,
		AguinaldoAlreadyPaid: p.AguinaldoAlreadyPaid,
	}
	// Optional dates: the engine falls back to the hire date when the
	// calculation start is absent.
	if p.CalculationStartDate != "" {
		params.CalculationStartDate, _ = v.Date("caseParams.calculationStartDate", p.CalculationStartDate)
	}
	if p.QuinquenioStartDate != "" {
		params.QuinquenioStartDate, _ = v.Date("caseParams.quinquenioStartDate", p.QuinquenioStartDate)
	}
	return params
}

func (p manualInputsPayload) toDomain(v *shared.Validator) finiquito.ManualInputs {
	vacation, _ := v.Decimal("manualInputs.vacationDaysBalance", p.VacationDaysBalance)
	bono, _ := v.Decimal("manualInputs.bonoExtraordinarioMonto", p.BonoExtraordinarioMonto)

	manual := finiquito.ManualInputs{
		VacationDaysBalance:     vacation,
		RCIVAFlag:               p.RCIVAFlag,
		BonoExtraordinarioMonto: bono,
		BonoExtraordinarioLabel: p.BonoExtraordinarioLabel,
	}
	for i, a := range p.Anticipos {
		amount, _ := v.Decimal(indexedField("manualInputs.anticipos", i, "amount"), a.Amount)
		manual.Anticipos = append(manual.Anticipos, finiquito.AdjustmentLine{Label: a.Label, Amount: amount})
	}
	for i, d := range p.Deducciones {
		amount, _ := v.Decimal(indexedField("manualInputs.deducciones", i, "amount"), d.Amount)
		manual.Deducciones = append(manual.Deducciones, finiquito.AdjustmentLine{Label: d.Label, Amount: amount})
	}
	return manual
}

func (p motivoConfigPayload) toDomain() finiquito.MotivoConfig {
	return finiquito.MotivoConfig{
		Code:          p.Code,
		Description:   p.Description,
		DiaMenos:      p.DiaMenos,
		Indemnizacion: p.Indemnizacion,
		Aguinaldo:     p.Aguinaldo,
		Desahucio:     p.Desahucio,
		Vacaciones:    p.Vacaciones,
		IsActive:      p.IsActive,
	}
}
