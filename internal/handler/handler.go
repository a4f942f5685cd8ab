package handler

import (
	"errors"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"projection-engine/internal/auth"
	"projection-engine/internal/engine"
	"projection-engine/internal/milestone"
	"projection-engine/internal/model"
	"projection-engine/internal/tax"
)

// Handler is the HTTP boundary. It rejects missing or mistyped fields
// with a 400 before any engine code runs; numeric plausibility is the
// engine's job.
type Handler struct {
	engine   *engine.Engine
	verifier *auth.Verifier
	log      *slog.Logger
}

func New(e *engine.Engine, v *auth.Verifier, log *slog.Logger) *Handler {
	return &Handler{engine: e, verifier: v, log: log}
}

// Handle routes every request.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/projection/tax":
		h.tax(ctx)
	case "/projection/paycheck":
		h.paycheck(ctx)
	case "/projection/build":
		h.build(ctx)
	case "/projection/future-savings":
		h.futureSavings(ctx)
	case "/projection/revalidate":
		h.revalidate(ctx)
	case "/milestones/estimate-payment":
		h.estimatePayment(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) tax(ctx *fasthttp.RequestCtx) {
	var req model.TaxRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Income == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "income is required")
		return
	}
	if req.FilingStatus == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "filing_status is required")
		return
	}

	resp, err := h.engine.ComputeTax(*req.Income, model.FilingStatus(req.FilingStatus), req.Jurisdiction)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) paycheck(ctx *fasthttp.RequestCtx) {
	var req model.PaycheckRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.AnnualIncome == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "annual_income is required")
		return
	}
	if req.PayFrequency == "" || req.FilingStatus == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "pay_frequency and filing_status are required")
		return
	}

	resp, err := h.engine.ComputePaycheck(*req.AnnualIncome, model.PayFrequency(req.PayFrequency), model.FilingStatus(req.FilingStatus), req.Jurisdiction)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) build(ctx *fasthttp.RequestCtx) {
	var req model.BuildRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Profile == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "profile is required")
		return
	}
	if req.FilingStatus == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "filing_status is required")
		return
	}

	resp, err := h.engine.BuildProjection(&req)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	if len(resp.Diagnostics) > 0 {
		h.log.Warn("projection repaired",
			"diagnostics", len(resp.Diagnostics),
			"outcome", resp.CalculationMetadata.CalculationOutcome)
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) futureSavings(ctx *fasthttp.RequestCtx) {
	var req model.FutureSavingsRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Profile == nil || req.TargetYears == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "profile and target_years are required")
		return
	}

	resp, err := h.engine.FutureSavings(req.Profile, *req.TargetYears)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) revalidate(ctx *fasthttp.RequestCtx) {
	userID, ok := h.authenticate(ctx)
	if !ok {
		return
	}

	var req model.RevalidateRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Projection == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "projection is required")
		return
	}

	resp, err := h.engine.Revalidate(req.Projection, userID)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	if len(resp.Diagnostics) > 0 {
		h.log.Warn("stored projection repaired on re-entry",
			"user_id", userID,
			"diagnostics", len(resp.Diagnostics))
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) estimatePayment(ctx *fasthttp.RequestCtx) {
	var req model.EstimatePaymentRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.TotalValue == nil || req.DownPayment == nil || req.AnnualRate == nil || req.TermYears == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "total_value, down_payment, annual_rate and term_years are required")
		return
	}

	payment, err := milestone.EstimateMonthlyPayment(*req.TotalValue, *req.DownPayment, *req.AnnualRate, *req.TermYears)
	if err != nil {
		h.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.EstimatePaymentResponse{MonthlyPayment: payment})
}

// authenticate extracts and verifies the bearer token, writing a 401 on
// failure.
func (h *Handler) authenticate(ctx *fasthttp.RequestCtx) (int64, bool) {
	header := string(ctx.Request.Header.Peek("Authorization"))
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		writeError(ctx, fasthttp.StatusUnauthorized, "Bearer token required")
		return 0, false
	}
	userID, err := h.verifier.UserID(token)
	if err != nil {
		writeError(ctx, fasthttp.StatusUnauthorized, "Invalid token")
		return 0, false
	}
	return userID, true
}

// decode enforces POST and unmarshals the body, writing a 400 on failure.
func (h *Handler) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, tax.ErrInvalidInput),
		errors.Is(err, tax.ErrUnknownFilingStatus),
		errors.Is(err, milestone.ErrInvalidMilestone):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrOwnership):
		writeError(ctx, fasthttp.StatusForbidden, err.Error())
	default:
		h.log.Error("calculation failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
