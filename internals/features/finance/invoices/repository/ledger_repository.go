// file: internals/features/finance/invoices/repository/ledger_repository.go
package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "sekolahku_backend/internals/features/finance/invoices/model"
)

// LedgerRepository (Ledger Store): satu-satunya pintu baca/tulis baris
// invoices / invoice_items / payments. Semua method menerima *gorm.DB
// supaya bisa dikomposisi ke dalam transaksi caller; nil = pakai DB default.
type LedgerRepository struct {
	DB *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

func (r *LedgerRepository) db(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.DB
}

func IsUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

/* ======================= INVOICES ======================= */

func (r *LedgerRepository) FindInvoice(tx *gorm.DB, invoiceID uuid.UUID) (*model.InvoiceModel, error) {
	var m model.InvoiceModel
	if err := r.db(tx).
		Where("invoice_id = ?", invoiceID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindInvoiceForUpdate: baca + row lock (SELECT ... FOR UPDATE) di dalam tx.
// sqlite tidak kenal FOR UPDATE (single-writer); lock per-invoice di
// service yang menserialisasi di sana.
func (r *LedgerRepository) FindInvoiceForUpdate(tx *gorm.DB, invoiceID uuid.UUID) (*model.InvoiceModel, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.InvoiceModel
	if err := q.
		Where("invoice_id = ?", invoiceID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindOrCreateByPeriod: upsert eksplisit di natural key
// (student, period_start, period_end). Dibuat DRAFT dengan total 0.
func (r *LedgerRepository) FindOrCreateByPeriod(tx *gorm.DB, studentID uuid.UUID, periodStart, periodEnd time.Time) (*model.InvoiceModel, bool, error) {
	db := r.db(tx)

	var m model.InvoiceModel
	err := db.
		Where("invoice_student_id = ?", studentID).
		Where("invoice_period_start = ?", periodStart).
		Where("invoice_period_end = ?", periodEnd).
		First(&m).Error
	if err == nil {
		return &m, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	m = model.InvoiceModel{
		InvoiceStudentID:   studentID,
		InvoicePeriodStart: periodStart,
		InvoicePeriodEnd:   periodEnd,
		InvoiceStatus:      model.InvoiceStatusDraft,
		InvoiceTotalCents:  0,
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

type InvoiceFilter struct {
	StudentID *uuid.UUID
	Status    *model.InvoiceStatus
	Limit     int
	Offset    int
}

func (r *LedgerRepository) ListInvoices(tx *gorm.DB, f InvoiceFilter) ([]model.InvoiceModel, int64, error) {
	db := r.db(tx).Model(&model.InvoiceModel{})
	if f.StudentID != nil {
		db = db.Where("invoice_student_id = ?", *f.StudentID)
	}
	if f.Status != nil {
		db = db.Where("invoice_status = ?", *f.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.InvoiceModel
	q := db.Order("invoice_created_at DESC, invoice_id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *LedgerRepository) UpdateStatus(tx *gorm.DB, invoiceID uuid.UUID, status model.InvoiceStatus) error {
	return r.db(tx).Model(&model.InvoiceModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]any{
			"invoice_status":     status,
			"invoice_updated_at": time.Now(),
		}).Error
}

/* ======================= ITEMS ======================= */

func (r *LedgerRepository) InsertItem(tx *gorm.DB, item *model.InvoiceItemModel) error {
	return r.db(tx).Create(item).Error
}

func (r *LedgerRepository) ListItems(tx *gorm.DB, invoiceID uuid.UUID) ([]model.InvoiceItemModel, error) {
	var rows []model.InvoiceItemModel
	err := r.db(tx).
		Where("invoice_item_invoice_id = ?", invoiceID).
		Order("invoice_item_created_at, invoice_item_id").
		Find(&rows).Error
	return rows, err
}

// DeleteItem: hapus satu item milik invoice tsb (hard delete).
// Mengembalikan jumlah baris terhapus supaya caller bisa 404.
func (r *LedgerRepository) DeleteItem(tx *gorm.DB, invoiceID, itemID uuid.UUID) (int64, error) {
	res := r.db(tx).
		Where("invoice_item_invoice_id = ?", invoiceID).
		Where("invoice_item_id = ?", itemID).
		Delete(&model.InvoiceItemModel{})
	return res.RowsAffected, res.Error
}

// DeleteItems: bersihkan semua item invoice (jalur batch replace).
func (r *LedgerRepository) DeleteItems(tx *gorm.DB, invoiceID uuid.UUID) error {
	return r.db(tx).
		Where("invoice_item_invoice_id = ?", invoiceID).
		Delete(&model.InvoiceItemModel{}).Error
}

// RecomputeTotal: tulis ulang invoice_total_cents = Σ item (recompute
// penuh, bukan inkremental — aman walau ada item terhapus di luar jalur).
func (r *LedgerRepository) RecomputeTotal(tx *gorm.DB, invoiceID uuid.UUID) error {
	db := r.db(tx)
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.InvoiceItemModel{}).
		Select("COALESCE(SUM(invoice_item_total_cents), 0)").
		Where("invoice_item_invoice_id = ?", invoiceID)
	return db.Model(&model.InvoiceModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]any{
			"invoice_total_cents": sub,
			"invoice_updated_at":  time.Now(),
		}).Error
}

/* ======================= PAYMENTS ======================= */

func (r *LedgerRepository) InsertPayment(tx *gorm.DB, p *model.PaymentModel) error {
	return r.db(tx).Create(p).Error
}

func (r *LedgerRepository) ListPayments(tx *gorm.DB, invoiceID uuid.UUID) ([]model.PaymentModel, error) {
	var rows []model.PaymentModel
	err := r.db(tx).
		Where("payment_invoice_id = ?", invoiceID).
		Order("payment_created_at, payment_id").
		Find(&rows).Error
	return rows, err
}

// SumPaid: Σ amount payment SUCCESS milik satu invoice.
func (r *LedgerRepository) SumPaid(tx *gorm.DB, invoiceID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db(tx).Model(&model.PaymentModel{}).
		Select("COALESCE(SUM(payment_amount_cents), 0)").
		Where("payment_invoice_id = ?", invoiceID).
		Where("payment_status = ?", model.PaymentStatusSuccess).
		Scan(&sum).Error
	return sum, err
}

/* ======================= STUDENT SCOPE ======================= */

// SumBilledByStudent: Σ total_cents seluruh invoice milik siswa.
func (r *LedgerRepository) SumBilledByStudent(tx *gorm.DB, studentID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db(tx).Model(&model.InvoiceModel{}).
		Select("COALESCE(SUM(invoice_total_cents), 0)").
		Where("invoice_student_id = ?", studentID).
		Scan(&sum).Error
	return sum, err
}

// SumPaidByStudent: Σ payment SUCCESS atas seluruh invoice siswa.
func (r *LedgerRepository) SumPaidByStudent(tx *gorm.DB, studentID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db(tx).Model(&model.PaymentModel{}).
		Select("COALESCE(SUM(payment_amount_cents), 0)").
		Joins("JOIN invoices ON invoices.invoice_id = payments.payment_invoice_id").
		Where("invoices.invoice_student_id = ?", studentID).
		Where("invoices.invoice_deleted_at IS NULL").
		Where("payments.payment_status = ?", model.PaymentStatusSuccess).
		Scan(&sum).Error
	return sum, err
}

/* ======================= BATCH RUNS ======================= */

func (r *LedgerRepository) InsertBatchRun(tx *gorm.DB, run *model.InvoiceBatchRunModel) error {
	return r.db(tx).Create(run).Error
}
