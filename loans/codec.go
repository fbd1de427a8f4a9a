/*
codec.go - Storage slot wire format

FORMAT:
  The slot holds one JSON array of client records:

    [{"name": "Ana", "valor": 1000, "total": 1100,
      "parcelas": [{"valor": 550, "vencimento": "2024-02-15", "paga": false}]}]

  Money is written as a bare JSON number carrying the full decimal string,
  so it round-trips without float conversion. Due dates are written as
  YYYY-MM-DD.

LEGACY SLOTS:
  Slots written by the browser version used "nome" for the client name and
  JavaScript Date JSON (RFC 3339, UTC) for due dates. Both are accepted on
  decode; the UTC calendar date is kept. Encoding always writes the current
  format.
*/
package loans

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type clientRecord struct {
	Name         string              `json:"name,omitempty"`
	LegacyName   string              `json:"nome,omitempty"`
	Principal    jsonNumber          `json:"valor"`
	Total        jsonNumber          `json:"total"`
	Installments []installmentRecord `json:"parcelas"`
}

type installmentRecord struct {
	Amount  jsonNumber `json:"valor"`
	DueDate string     `json:"vencimento"`
	Paid    bool       `json:"paga"`
}

// jsonNumber encodes a decimal as an unquoted JSON number.
type jsonNumber decimal.Decimal

func (n jsonNumber) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *jsonNumber) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = jsonNumber(d)
	return nil
}

// EncodeClients serializes the full collection for a storage slot.
func EncodeClients(clients []Client) ([]byte, error) {
	records := make([]clientRecord, len(clients))
	for i, c := range clients {
		rec := clientRecord{
			Name:         c.Name,
			Principal:    jsonNumber(c.Principal),
			Total:        jsonNumber(c.Total),
			Installments: make([]installmentRecord, len(c.Installments)),
		}
		for j, inst := range c.Installments {
			rec.Installments[j] = installmentRecord{
				Amount:  jsonNumber(inst.Amount),
				DueDate: inst.DueDate.String(),
				Paid:    inst.Paid,
			}
		}
		records[i] = rec
	}
	return json.Marshal(records)
}

// DecodeClients parses a storage slot. Empty input decodes to no clients.
// Legacy RFC 3339 due dates are read as calendar dates in loc (UTC when nil).
func DecodeClients(data []byte, loc *time.Location) ([]Client, error) {
	if loc == nil {
		loc = time.UTC
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Client{}, nil
	}

	var records []clientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSlot, err)
	}

	clients := make([]Client, 0, len(records))
	for i, rec := range records {
		name := rec.Name
		if name == "" {
			name = rec.LegacyName
		}
		if name == "" {
			return nil, fmt.Errorf("%w: record %d has no name", ErrCorruptSlot, i)
		}
		if len(rec.Installments) == 0 {
			return nil, fmt.Errorf("%w: client %q has no installments", ErrCorruptSlot, name)
		}

		c := Client{
			Name:         name,
			Principal:    decimal.Decimal(rec.Principal),
			Total:        decimal.Decimal(rec.Total),
			Installments: make([]Installment, len(rec.Installments)),
		}
		for j, ir := range rec.Installments {
			due, err := parseWireDate(ir.DueDate, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: client %q installment %d: %w", ErrCorruptSlot, name, j+1, err)
			}
			c.Installments[j] = Installment{
				Amount:  decimal.Decimal(ir.Amount),
				DueDate: due,
				Paid:    ir.Paid,
			}
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func parseWireDate(s string, loc *time.Location) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("bad due date %q", s)
	}
	return civil.DateOf(t.In(loc)), nil
}
