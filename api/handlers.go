/*
handlers.go - HTTP API handlers for the loan book

ENDPOINTS:
  Clients:
    GET    /api/clients                   List clients with status and pending installments
    POST   /api/clients                   Create client (JSON or form-encoded)
    GET    /api/clients/{name}            Get one client
    POST   /api/clients/{name}/pay        Pay next installment
    DELETE /api/clients/{name}            Remove client (204 even when absent)
    GET    /api/clients/{name}/statement  Export statement (?format=text for plain text)

  Dashboard:
    GET    /api/summary                   Invested, recovered, net profit

  Form:
    POST   /api/form/clear                Accepted, changes nothing

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input
  - 404: Client not found
  - 409: Duplicate name, debt already settled
  - 500: Store failures

SECURITY NOTE:
  No authentication. The service is meant for a single local user.
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/warp/loan-ledger/loans"
	"github.com/warp/loan-ledger/logger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *loans.Ledger
	Log    zerolog.Logger
}

// NewHandler creates a new handler over the given ledger.
func NewHandler(ledger *loans.Ledger, log zerolog.Logger) *Handler {
	return &Handler{Ledger: ledger, Log: log}
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients returns all clients in creation order.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	views := h.Ledger.Overview()

	dtos := make([]ClientDTO, len(views))
	for i, v := range views {
		dtos[i] = toClientDTO(v)
	}

	writeJSON(w, http.StatusOK, dtos)
}

// GetClient returns a single client.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	name, err := clientName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client name", err)
		return
	}

	view, ok := h.Ledger.View(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toClientDTO(view))
}

// CreateClient creates a client from a JSON body or a submitted form.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCreateInput(r)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	client, err := h.Ledger.Create(r.Context(), in)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	log := h.requestLog(r)
	log.Info().Str("client", client.Name).Msg("client created")

	writeJSON(w, http.StatusCreated, toClientDTO(loans.ClientView{
		Client:  client,
		Status:  loans.Classify(client.Installments, h.Ledger.Today()),
		Pending: loans.Pending(client),
	}))
}

// PayInstallment marks the client's next unpaid installment as paid.
func (h *Handler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	name, err := clientName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client name", err)
		return
	}

	payment, err := h.Ledger.Pay(r.Context(), name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	log := h.requestLog(r)
	log.Info().Str("client", name).Int("installment", payment.Number).Msg("installment paid")

	status, err := h.Ledger.Status(name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentDTO{
		Client:  payment.Client,
		Number:  payment.Number,
		Amount:  payment.Amount,
		DueDate: payment.DueDate.String(),
		Status:  status,
	})
}

// DeleteClient removes a client. Unknown names succeed as well.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	name, err := clientName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client name", err)
		return
	}

	if err := h.Ledger.Remove(r.Context(), name); err != nil {
		writeLedgerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStatement returns the export view of a client.
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	name, err := clientName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client name", err)
		return
	}

	st, err := h.Ledger.Statement(name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": fmt.Sprintf("statement_%s.txt", st.Name),
		}))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(RenderStatement(st)))
		return
	}

	writeJSON(w, http.StatusOK, toStatementDTO(st))
}

// =============================================================================
// DASHBOARD & FORM
// =============================================================================

// GetSummary returns portfolio totals.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	totals := h.Ledger.Totals()
	writeJSON(w, http.StatusOK, SummaryDTO{
		Clients:   h.Ledger.Len(),
		Invested:  totals.Invested,
		Recovered: totals.Recovered,
		NetProfit: totals.NetProfit(),
	})
}

// ClearForm acknowledges a form reset. The ledger is not touched.
func (h *Handler) ClearForm(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// requestLog prefers the request-scoped logger set by RequestLogger.
func (h *Handler) requestLog(r *http.Request) zerolog.Logger {
	if _, ok := r.Context().Value(logger.LoggerKey).(zerolog.Logger); ok {
		return logger.FromContext(r.Context())
	}
	return h.Log
}

// RenderStatement formats a statement as plain text, amounts rounded to cents.
func RenderStatement(st loans.Statement) string {
	var b strings.Builder
	b.WriteString("Loan statement\n")
	fmt.Fprintf(&b, "Client: %s\n", st.Name)
	for _, l := range st.Lines {
		state := "Pending"
		if l.Paid {
			state = "Paid"
		}
		fmt.Fprintf(&b, "%d - %s - %s\n", l.Number, l.Amount.StringFixed(2), state)
	}
	return b.String()
}

func decodeCreateInput(r *http.Request) (loans.CreateInput, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return loans.CreateInput{}, &loans.InputError{Field: "form", Reason: err.Error()}
		}
		return loans.ParseCreateInput(
			r.FormValue("name"),
			r.FormValue("principal"),
			r.FormValue("rate"),
			r.FormValue("schedule"),
			r.FormValue("installments"),
		)
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return loans.CreateInput{}, &loans.InputError{Field: "body", Reason: err.Error()}
	}
	st, err := loans.ParseScheduleType(req.Schedule)
	if err != nil {
		return loans.CreateInput{}, err
	}
	if !req.Principal.Valid {
		return loans.CreateInput{}, &loans.InputError{Field: "principal", Reason: "is required"}
	}
	if !req.RatePercent.Valid {
		return loans.CreateInput{}, &loans.InputError{Field: "rate", Reason: "is required"}
	}
	return loans.CreateInput{
		Name:         strings.TrimSpace(req.Name),
		Principal:    req.Principal.Decimal,
		RatePercent:  req.RatePercent.Decimal,
		Schedule:     st,
		Installments: req.Installments,
	}, nil
}

// clientName reads {name}, unescaping it when chi routed on the raw path.
func clientName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loans.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, loans.ErrNotFound):
		writeError(w, http.StatusNotFound, "Client not found", err)
	case errors.Is(err, loans.ErrDuplicateName):
		writeError(w, http.StatusConflict, "Client already exists", err)
	case errors.Is(err, loans.ErrAlreadySettled):
		writeError(w, http.StatusConflict, "Debt already settled", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
