/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts are decimal strings at full precision ("366.6666666666666667").
  Front ends round for display.

DATES:
  Due dates are YYYY-MM-DD.
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/loan-ledger/loans"
)

// CreateClientRequest is the JSON body for POST /api/clients. Principal and
// rate are required; absent or null values are rejected.
type CreateClientRequest struct {
	Name         string              `json:"name"`
	Principal    decimal.NullDecimal `json:"principal"`
	RatePercent  decimal.NullDecimal `json:"rate"`
	Schedule     string              `json:"schedule"`
	Installments int                 `json:"installments"`
}

// InstallmentDTO is one installment of a schedule.
type InstallmentDTO struct {
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
	Paid    bool            `json:"paid"`
}

// PendingInstallmentDTO is an unpaid installment.
type PendingInstallmentDTO struct {
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
}

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	Name         string                  `json:"name"`
	Status       loans.Status            `json:"status"`
	Principal    decimal.Decimal         `json:"principal"`
	Total        decimal.Decimal         `json:"total"`
	Recovered    decimal.Decimal         `json:"recovered"`
	Outstanding  decimal.Decimal         `json:"outstanding"`
	Installments []InstallmentDTO        `json:"installments"`
	Pending      []PendingInstallmentDTO `json:"pending"`
}

// PaymentDTO is returned after paying an installment.
type PaymentDTO struct {
	Client  string          `json:"client"`
	Number  int             `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
	Status  loans.Status    `json:"status"`
}

// SummaryDTO carries portfolio totals.
type SummaryDTO struct {
	Clients   int             `json:"clients"`
	Invested  decimal.Decimal `json:"invested"`
	Recovered decimal.Decimal `json:"recovered"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// StatementLineDTO is one line of an exported statement.
type StatementLineDTO struct {
	Number int             `json:"number"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

// StatementDTO is the export view of a client.
type StatementDTO struct {
	Name  string             `json:"name"`
	Lines []StatementLineDTO `json:"lines"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toClientDTO(v loans.ClientView) ClientDTO {
	c := v.Client
	dto := ClientDTO{
		Name:         c.Name,
		Status:       v.Status,
		Principal:    c.Principal,
		Total:        c.Total,
		Recovered:    c.Recovered(),
		Outstanding:  c.Outstanding(),
		Installments: make([]InstallmentDTO, len(c.Installments)),
		Pending:      make([]PendingInstallmentDTO, len(v.Pending)),
	}
	for i, inst := range c.Installments {
		dto.Installments[i] = InstallmentDTO{
			Number:  i + 1,
			Amount:  inst.Amount,
			DueDate: inst.DueDate.String(),
			Paid:    inst.Paid,
		}
	}
	for i, p := range v.Pending {
		dto.Pending[i] = PendingInstallmentDTO{
			Number:  p.Number,
			Amount:  p.Amount,
			DueDate: p.DueDate.String(),
		}
	}
	return dto
}

func toStatementDTO(st loans.Statement) StatementDTO {
	dto := StatementDTO{Name: st.Name, Lines: make([]StatementLineDTO, len(st.Lines))}
	for i, l := range st.Lines {
		dto.Lines[i] = StatementLineDTO{Number: l.Number, Amount: l.Amount, Paid: l.Paid}
	}
	return dto
}
