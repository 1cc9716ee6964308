// file: internals/features/finance/invoices/service/item_ledger_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/invoices/model"
	repo "sekolahku_backend/internals/features/finance/invoices/repository"
)

// ItemLedger menjaga invariant: invoice_total_cents == Σ item setelah
// mutasi item apapun selesai. Status TIDAK disentuh di sini — itu urusan
// Payment Processor (perbandingan paid vs total).
type ItemLedger struct {
	DB     *gorm.DB
	Ledger *repo.LedgerRepository
}

func NewItemLedger(db *gorm.DB, ledger *repo.LedgerRepository) *ItemLedger {
	return &ItemLedger{DB: db, Ledger: ledger}
}

type AddItemInput struct {
	ItemType       model.InvoiceItemType
	Description    string
	Quantity       float64
	UnitPriceCents int64
}

func (in AddItemInput) validate() error {
	if !model.ValidInvoiceItemType(in.ItemType) {
		return invalidf("item_type %q tidak dikenal", in.ItemType)
	}
	if in.Quantity <= 0 {
		return invalidf("quantity harus > 0")
	}
	return nil
}

// AddItem: insert item + recompute total, satu transaksi.
func (s *ItemLedger) AddItem(invoiceID uuid.UUID, in AddItemInput) (*model.InvoiceItemModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var item *model.InvoiceItemModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Ledger.FindInvoice(tx, invoiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("invoice %s tidak ditemukan", invoiceID)
			}
			return err
		}
		var err error
		item, err = s.AddItemTx(tx, invoiceID, in)
		return err
	})
	if err != nil {
		return nil, wrapTx(err)
	}
	return item, nil
}

// AddItemTx: jalur internal untuk caller yang sudah pegang transaksi
// (dipakai juga oleh Batch Generator). Precondition input sudah valid
// dan invoice sudah dipastikan ada oleh caller.
func (s *ItemLedger) AddItemTx(tx *gorm.DB, invoiceID uuid.UUID, in AddItemInput) (*model.InvoiceItemModel, error) {
	item := &model.InvoiceItemModel{
		InvoiceItemInvoiceID:      invoiceID,
		InvoiceItemType:           in.ItemType,
		InvoiceItemDescription:    in.Description,
		InvoiceItemQuantity:       in.Quantity,
		InvoiceItemUnitPriceCents: in.UnitPriceCents,
		InvoiceItemTotalCents:     model.LineTotalCents(in.Quantity, in.UnitPriceCents),
	}
	if err := s.Ledger.InsertItem(tx, item); err != nil {
		return nil, err
	}
	if err := s.Ledger.RecomputeTotal(tx, invoiceID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem: hapus satu item + recompute total, satu transaksi.
// Koreksi item = RemoveItem lalu AddItem (item immutable).
func (s *ItemLedger) RemoveItem(invoiceID, itemID uuid.UUID) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Ledger.FindInvoice(tx, invoiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("invoice %s tidak ditemukan", invoiceID)
			}
			return err
		}
		n, err := s.Ledger.DeleteItem(tx, invoiceID, itemID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFoundf("item %s tidak ada di invoice %s", itemID, invoiceID)
		}
		return s.Ledger.RecomputeTotal(tx, invoiceID)
	})
	return wrapTx(err)
}

// SetStatus: override administratif langsung (DRAFT→ISSUED, VOID, dll).
// Sengaja TANPA validasi terhadap total pembayaran — escape hatch staff
// yang terdokumentasi; transisi turunan pembayaran ada di Payment Processor.
func (s *ItemLedger) SetStatus(invoiceID uuid.UUID, status model.InvoiceStatus) error {
	if !model.ValidInvoiceStatus(status) {
		return invalidf("status %q tidak dikenal", status)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Ledger.FindInvoice(tx, invoiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("invoice %s tidak ditemukan", invoiceID)
			}
			return err
		}
		return s.Ledger.UpdateStatus(tx, invoiceID, status)
	})
	return wrapTx(err)
}
