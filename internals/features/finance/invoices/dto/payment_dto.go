// file: internals/features/finance/invoices/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/finance/invoices/model"
)

/* ================== REQUESTS ================== */

// amount_cents tidak divalidasi positif di sini: processor yang
// meng-clamp dan menolak dengan NothingToPay bila hasilnya ≤ 0.
type PayInvoiceRequest struct {
	AmountCents int64           `json:"amount_cents"`
	Method      m.PaymentMethod `json:"method" validate:"required,oneof=cash card transfer wallet"`
}

/* ================== RESPONSES ================== */

type PaymentResponse struct {
	PaymentID          uuid.UUID       `json:"payment_id"`
	PaymentInvoiceID   uuid.UUID       `json:"payment_invoice_id"`
	PaymentPayerUserID *uuid.UUID      `json:"payment_payer_user_id,omitempty"`
	PaymentAmountCents int64           `json:"payment_amount_cents"`
	PaymentMethod      m.PaymentMethod `json:"payment_method"`
	PaymentStatus      m.PaymentStatus `json:"payment_status"`
	PaymentPaidAt      *time.Time      `json:"payment_paid_at,omitempty"`
	PaymentCreatedAt   time.Time       `json:"payment_created_at"`
}

func ToPaymentResponse(mo m.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:          mo.PaymentID,
		PaymentInvoiceID:   mo.PaymentInvoiceID,
		PaymentPayerUserID: mo.PaymentPayerUserID,
		PaymentAmountCents: mo.PaymentAmountCents,
		PaymentMethod:      mo.PaymentMethod,
		PaymentStatus:      mo.PaymentStatus,
		PaymentPaidAt:      mo.PaymentPaidAt,
		PaymentCreatedAt:   mo.PaymentCreatedAt,
	}
}

func FromPaymentModels(rows []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToPaymentResponse(r))
	}
	return out
}

type PayInvoiceResponse struct {
	PaidCents int64           `json:"paid_cents"`
	NewStatus m.InvoiceStatus `json:"new_status"`
}

type FeeStatusResponse struct {
	TotalBilled int64 `json:"total_billed"`
	TotalPaid   int64 `json:"total_paid"`
	DueCents    int64 `json:"due_cents"`
}
