package finiquitohandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finiquitos/internal/domain/audit"
	"finiquitos/internal/domain/documents"
	"finiquitos/internal/domain/finiquito"
	"finiquitos/internal/domain/validation"
	"finiquitos/internal/transport/http/api"
	"finiquitos/internal/transport/http/middleware"
	"finiquitos/internal/transport/http/shared"
)

// AuditTrail is the slice of the audit service the handlers use.
type AuditTrail interface {
	Record(ctx context.Context, action, entityType, entityID, requestID, ip string, before, after any) error
	List(ctx context.Context, filter audit.Filter, includeSnapshots bool, limit, offset int) ([]audit.Event, error)
	Count(ctx context.Context, filter audit.Filter) (int, error)
}

type Handler struct {
	Store finiquito.StoreAPI
	Calc  *finiquito.Calculator
	Docs  *documents.Service
	Audit AuditTrail
}

func NewHandler(store finiquito.StoreAPI, calc *finiquito.Calculator, docs *documents.Service, trail AuditTrail) *Handler {
	return &Handler{Store: store, Calc: calc, Docs: docs, Audit: trail}
}

// recordAudit never fails the request; a broken trail is logged and the
// response proceeds.
func (h *Handler) recordAudit(r *http.Request, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), action, entityType, entityID, reqID, r.RemoteAddr, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/motivos", func(r chi.Router) {
		r.Get("/", h.handleListMotivos)
		r.Put("/{code}", h.handleUpsertMotivo)
	})
	r.Route("/finiquitos", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Get("/", h.handleListCases)
		r.Get("/{caseID}", h.handleGetCase)
		r.Post("/{caseID}/document", h.handleGenerateDocument)
		r.Get("/{caseID}/document", h.handleDownloadDocument)
	})
	r.Get("/audit", h.handleListAudit)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	employee := payload.Employee.toDomain(v)
	months := make([]finiquito.PayrollMonth, 0, len(payload.PayrollMonths))
	for i, m := range payload.PayrollMonths {
		months = append(months, m.toDomain(indexedField("payrollMonths", i, ""), v))
	}
	caseParams := payload.CaseParams.toDomain(v)
	manual := payload.ManualInputs.toDomain(v)
	if v.Reject(w, reqID) {
		return
	}

	checks := validation.RunAll(employee, months, caseParams)
	if validation.HasBlocking(checks) {
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "validation_failed",
			"case data failed pre-calculation checks", map[string]any{"validations": checks}, reqID)
		return
	}

	var motivoConfig *finiquito.MotivoConfig
	cfg, err := h.Store.GetMotivoConfig(r.Context(), caseParams.MotivoRetiro)
	switch {
	case err == nil:
		motivoConfig = &cfg
	case errors.Is(err, finiquito.ErrMotivoNotFound):
		// Engine applies the documented fallback and records a warning.
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not load motivo configuration", reqID)
		return
	}

	result, err := h.Calc.Calculate(employee, months, caseParams, manual, motivoConfig)
	if err != nil {
		switch {
		case errors.Is(err, finiquito.ErrInvalidRange):
			api.Fail(w, http.StatusUnprocessableEntity, "invalid_range", err.Error(), reqID)
		case errors.Is(err, finiquito.ErrInsufficientData):
			api.Fail(w, http.StatusUnprocessableEntity, "insufficient_data", err.Error(), reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "calculation_error", "calculation failed", reqID)
		}
		return
	}

	caseID, err := h.Store.CreateCase(r.Context(), result)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not persist case", reqID)
		return
	}
	h.recordAudit(r, audit.ActionCaseCalculated, audit.EntityCase, caseID, nil, map[string]any{
		"motivoRetiro": result.CaseParams.MotivoRetiro,
		"netPayment":   result.NetPayment.StringFixed(2),
		"warnings":     result.Warnings,
	})

	api.Created(w, map[string]any{
		"caseId":      caseID,
		"result":      result,
		"validations": checks,
	}, reqID)
}

func (h *Handler) handleListCases(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	cases, err := h.Store.ListCases(r.Context(), limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not list cases", reqID)
		return
	}
	total, err := h.Store.CountCases(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not count cases", reqID)
		return
	}

	api.Success(w, map[string]any{"items": cases, "total": total}, reqID)
}

func (h *Handler) handleGetCase(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	caseID := chi.URLParam(r, "caseID")

	result, err := h.Store.GetResult(r.Context(), caseID)
	if errors.Is(err, finiquito.ErrResultNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "case not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not load case", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	caseID := chi.URLParam(r, "caseID")

	result, err := h.Store.GetResult(r.Context(), caseID)
	if errors.Is(err, finiquito.ErrResultNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "case not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not load case", reqID)
		return
	}

	path, err := h.Docs.GenerateFiniquitoPDF(caseID, result)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_error", "could not generate document", reqID)
		return
	}
	if err := h.Store.SetDocumentPath(r.Context(), caseID, path); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not record document path", reqID)
		return
	}
	if err := h.Store.UpdateCaseStatus(r.Context(), caseID, finiquito.CaseStatusGenerated); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not update case status", reqID)
		return
	}
	h.recordAudit(r, audit.ActionDocumentGenerated, audit.EntityCase, caseID, nil, map[string]any{"documentPath": path})

	api.Success(w, map[string]any{"caseId": caseID, "documentPath": path}, reqID)
}

func (h *Handler) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	caseID := chi.URLParam(r, "caseID")

	path, err := h.Store.DocumentPath(r.Context(), caseID)
	if errors.Is(err, finiquito.ErrCaseNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "case not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not load case", reqID)
		return
	}
	if path == "" {
		api.Fail(w, http.StatusNotFound, "not_found", "document not generated yet", reqID)
		return
	}

	data, err := h.Docs.ReadDocument(path)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "document_error", "could not read document", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", caseID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleListMotivos(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	configs, err := h.Store.ListMotivoConfigs(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not list motivo configs", reqID)
		return
	}
	api.Success(w, configs, reqID)
}

func (h *Handler) handleUpsertMotivo(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	code := chi.URLParam(r, "code")

	var payload motivoConfigPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}
	payload.Code = code

	v := shared.NewValidator()
	v.Required("code", payload.Code, "is required")
	v.Required("description", payload.Description, "is required")
	if v.Reject(w, reqID) {
		return
	}

	var before any
	if existing, err := h.Store.GetMotivoConfig(r.Context(), code); err == nil {
		before = existing
	}

	cfg := payload.toDomain()
	if err := h.Store.UpsertMotivoConfig(r.Context(), cfg); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not save motivo config", reqID)
		return
	}
	h.recordAudit(r, audit.ActionMotivoUpserted, audit.EntityMotivo, code, before, cfg)

	api.Success(w, payload, reqID)
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if h.Audit == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "audit trail not enabled", reqID)
		return
	}

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		EntityID:   r.URL.Query().Get("entityId"),
	}
	includeSnapshots := r.URL.Query().Get("snapshots") == "true"

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	events, err := h.Audit.List(r.Context(), filter, includeSnapshots, limit, offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not list audit events", reqID)
		return
	}
	total, err := h.Audit.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "could not count audit events", reqID)
		return
	}

	api.Success(w, map[string]any{"items": events, "total": total}, reqID)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func indexedField(prefix string, index int, suffix string) string {
	field := fmt.Sprintf("%s[%d]", prefix, index)
	if suffix != "" {
		field += "." + suffix
	}
	return field
}
