// file: internals/features/finance/invoices/service/payment_processor_service.go
package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/invoices/model"
	repo "sekolahku_backend/internals/features/finance/invoices/repository"
	academics "sekolahku_backend/internals/features/school/academics/repository"
)

// Principal: identitas pemanggil hasil middleware auth.
type Principal struct {
	UserID uuid.UUID
	Role   string // staff|parent
}

func (p Principal) IsStaff() bool {
	return p.Role == "staff" || p.Role == "admin"
}

// PaymentProcessor: hitung sisa tagihan dan terapkan pembayaran.
// Invariant inti: Σ payment SUCCESS per invoice ≤ invoice_total_cents,
// juga di bawah pemanggil konkuren.
type PaymentProcessor struct {
	DB        *gorm.DB
	Ledger    *repo.LedgerRepository
	Academics *academics.AcademicsRepository

	// lock per-invoice, in-process. Baris invoice juga di-SELECT FOR
	// UPDATE di dalam transaksi, jadi invariant tetap aman lintas proses.
	locks sync.Map // uuid.UUID → *sync.Mutex
}

func NewPaymentProcessor(db *gorm.DB, ledger *repo.LedgerRepository, acad *academics.AcademicsRepository) *PaymentProcessor {
	return &PaymentProcessor{DB: db, Ledger: ledger, Academics: acad}
}

func (s *PaymentProcessor) lockInvoice(invoiceID uuid.UUID) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(invoiceID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

type PaymentResult struct {
	PaidCents int64               `json:"paid_cents"`
	NewStatus model.InvoiceStatus `json:"new_status"`
}

// ApplyPayment — langkah 1–6 dieksekusi atomik & terserialisasi per
// invoice: paid_so_far → due → clamp → insert payment SUCCESS → status.
// amount di-clamp: tidak pernah melebihi sisa due, tidak pernah negatif.
// Invoice VOID tetap menerima pembayaran (escape hatch dipertahankan).
func (s *PaymentProcessor) ApplyPayment(invoiceID uuid.UUID, principal Principal, amountCents int64, method model.PaymentMethod) (PaymentResult, error) {
	var res PaymentResult

	if !model.ValidPaymentMethod(method) {
		return res, invalidf("method %q tidak dikenal", method)
	}

	mu := s.lockInvoice(invoiceID)
	defer mu.Unlock()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		inv, err := s.Ledger.FindInvoiceForUpdate(tx, invoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("invoice %s tidak ditemukan", invoiceID)
			}
			return err
		}

		// otorisasi: staff bebas; parent wajib tertaut ke siswa invoice
		if !principal.IsStaff() {
			linked, err := s.Academics.HasActiveGuardianLink(tx, principal.UserID, inv.InvoiceStudentID)
			if err != nil {
				return err
			}
			if !linked {
				return unauthorizedf("user %s tidak tertaut ke siswa invoice ini", principal.UserID)
			}
		}

		paidSoFar, err := s.Ledger.SumPaid(tx, invoiceID)
		if err != nil {
			return err
		}

		due := inv.InvoiceTotalCents - paidSoFar
		if due < 0 {
			due = 0
		}
		pay := amountCents
		if pay < 0 {
			pay = 0
		}
		if pay > due {
			pay = due
		}
		if pay <= 0 {
			// sudah lunas, atau jumlah yang diminta tidak positif
			return ErrNothingToPay
		}

		now := time.Now()
		payerID := principal.UserID
		p := &model.PaymentModel{
			PaymentInvoiceID:   invoiceID,
			PaymentPayerUserID: &payerID,
			PaymentAmountCents: pay,
			PaymentMethod:      method,
			PaymentStatus:      model.PaymentStatusSuccess, // settle langsung (mock, tanpa gateway)
			PaymentPaidAt:      &now,
		}
		if err := s.Ledger.InsertPayment(tx, p); err != nil {
			return err
		}

		newStatus := model.InvoiceStatusPartiallyPaid
		if pay == due {
			newStatus = model.InvoiceStatusPaid
		}
		if err := s.Ledger.UpdateStatus(tx, invoiceID, newStatus); err != nil {
			return err
		}

		res = PaymentResult{PaidCents: pay, NewStatus: newStatus}
		return nil
	})
	if err != nil {
		return PaymentResult{}, wrapTx(err)
	}

	log.Printf("[PAY] invoice=%s payer=%s paid=%d status=%s", invoiceID, principal.UserID, res.PaidCents, res.NewStatus)
	return res, nil
}

/* ======================= FEE STATUS ======================= */

type FeeStatus struct {
	TotalBilled int64 `json:"total_billed"`
	TotalPaid   int64 `json:"total_paid"`
	DueCents    int64 `json:"due_cents"`
}

// FeeStatusByStudent: agregat read-only; selalu sama dengan jumlah
// due per-invoice karena keduanya turunan dari baris yang sama.
func (s *PaymentProcessor) FeeStatusByStudent(studentID uuid.UUID) (FeeStatus, error) {
	var fs FeeStatus

	ok, err := s.Academics.StudentExists(nil, studentID)
	if err != nil {
		return fs, wrapTx(err)
	}
	if !ok {
		return fs, notFoundf("siswa %s tidak ditemukan", studentID)
	}

	billed, err := s.Ledger.SumBilledByStudent(nil, studentID)
	if err != nil {
		return fs, wrapTx(err)
	}
	paid, err := s.Ledger.SumPaidByStudent(nil, studentID)
	if err != nil {
		return fs, wrapTx(err)
	}

	fs.TotalBilled = billed
	fs.TotalPaid = paid
	fs.DueCents = billed - paid
	return fs, nil
}

// EnsureGuardianOf: guard view endpoint /parent/children/:studentId/...
func (s *PaymentProcessor) EnsureGuardianOf(principal Principal, studentID uuid.UUID) error {
	if principal.IsStaff() {
		return nil
	}
	linked, err := s.Academics.HasActiveGuardianLink(nil, principal.UserID, studentID)
	if err != nil {
		return wrapTx(err)
	}
	if !linked {
		return unauthorizedf("user %s tidak tertaut ke siswa %s", principal.UserID, studentID)
	}
	return nil
}
