package response

import (
	"fmt"
	"strings"
	"time"
)

// InvoiceResponse is a derived, non-authoritative view: it is recomputed on
// demand from a booking (or membership) and never persisted.
type InvoiceResponse struct {
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	Customer      InvoiceCustomer `json:"customer"`
	Service       InvoiceService  `json:"service"`
	Amount        InvoiceAmount   `json:"amount"`
	Payment       InvoicePayment  `json:"payment"`
}

type InvoiceCustomer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type InvoiceService struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ProviderName string `json:"provider_name"`
	Location     string `json:"location"`
}

type InvoiceAmount struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

type InvoicePayment struct {
	Status        string     `json:"status"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// FileName is the suggested download name for the plain-text export.
func (inv *InvoiceResponse) FileName() string {
	return fmt.Sprintf("invoice-%s.txt", inv.InvoiceNumber)
}

// RenderText serializes the invoice as a flat, line-delimited key/value
// document suitable for download.
func (inv *InvoiceResponse) RenderText() string {
	var b strings.Builder

	writeSection := func(title string, pairs [][2]string) {
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("-", len(title)) + "\n")
		for _, pair := range pairs {
			fmt.Fprintf(&b, "%-16s %s\n", pair[0]+":", pair[1])
		}
		b.WriteString("\n")
	}

	paidAt := "N/A"
	if inv.Payment.PaidAt != nil {
		paidAt = inv.Payment.PaidAt.Format(time.RFC3339)
	}

	writeSection("INVOICE", [][2]string{
		{"Number", inv.InvoiceNumber},
		{"Issue Date", inv.IssueDate.Format("2006-01-02")},
	})
	writeSection("CUSTOMER", [][2]string{
		{"Name", inv.Customer.FullName},
		{"Email", inv.Customer.Email},
		{"Phone", inv.Customer.Phone},
		{"Address", inv.Customer.Address},
	})
	writeSection("SERVICE", [][2]string{
		{"Name", inv.Service.Name},
		{"Category", inv.Service.Category},
		{"Provider", inv.Service.ProviderName},
		{"Location", inv.Service.Location},
	})
	writeSection("AMOUNT", [][2]string{
		{"Subtotal", fmt.Sprintf("%.2f %s", inv.Amount.Subtotal, inv.Amount.Currency)},
		{"Tax", fmt.Sprintf("%.2f %s", inv.Amount.Tax, inv.Amount.Currency)},
		{"Total", fmt.Sprintf("%.2f %s", inv.Amount.Total, inv.Amount.Currency)},
	})
	writeSection("PAYMENT", [][2]string{
		{"Status", inv.Payment.Status},
		{"Method", inv.Payment.Method},
		{"Transaction ID", inv.Payment.TransactionID},
		{"Paid At", paidAt},
	})

	return b.String()
}
