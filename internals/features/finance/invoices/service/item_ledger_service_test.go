// file: internals/features/finance/invoices/service/item_ledger_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invModel "sekolahku_backend/internals/features/finance/invoices/model"
)

// Invariant: invoice_total_cents == Σ item setiap selesai mutasi item,
// termasuk diskon (harga satuan negatif) dan quantity pecahan.
func TestAddItem_TotalTracksItems(t *testing.T) {
	e := newTestEnv(t)

	student := e.makeStudent(t, "andi")
	inv, created, err := e.Ledger.FindOrCreateByPeriod(nil, student, date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)
	require.True(t, created)
	assert.Zero(t, e.invoice(t, inv.InvoiceID).InvoiceTotalCents)

	_, err = e.Items.AddItem(inv.InvoiceID, AddItemInput{
		ItemType: invModel.ItemTypeTuition, Description: "SPP", Quantity: 1, UnitPriceCents: 500000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500000), e.invoice(t, inv.InvoiceID).InvoiceTotalCents)

	// quantity pecahan: 2.5 × 10000 = 25000
	_, err = e.Items.AddItem(inv.InvoiceID, AddItemInput{
		ItemType: invModel.ItemTypeMeal, Description: "katering", Quantity: 2.5, UnitPriceCents: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(525000), e.invoice(t, inv.InvoiceID).InvoiceTotalCents)

	// diskon mengurangi total
	_, err = e.Items.AddItem(inv.InvoiceID, AddItemInput{
		ItemType: invModel.ItemTypeDiscount, Description: "potongan saudara", Quantity: 1, UnitPriceCents: -25000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500000), e.invoice(t, inv.InvoiceID).InvoiceTotalCents)

	items, err := e.Ledger.ListItems(nil, inv.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestAddItem_Validation(t *testing.T) {
	e := newTestEnv(t)

	student := e.makeStudent(t, "andi")
	invoiceID := e.makeInvoiceWithTotal(t, student, 100000)

	_, err := e.Items.AddItem(invoiceID, AddItemInput{ItemType: "pulsa", Quantity: 1, UnitPriceCents: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Items.AddItem(invoiceID, AddItemInput{ItemType: invModel.ItemTypeFee, Quantity: 0, UnitPriceCents: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Items.AddItem(invoiceID, AddItemInput{ItemType: invModel.ItemTypeFee, Quantity: -1, UnitPriceCents: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Items.AddItem(uuid.New(), AddItemInput{ItemType: invModel.ItemTypeFee, Quantity: 1, UnitPriceCents: 1000})
	assert.ErrorIs(t, err, ErrNotFound)

	// validasi gagal tidak menyentuh total
	assert.Equal(t, int64(100000), e.invoice(t, invoiceID).InvoiceTotalCents)
}

// Koreksi item = remove + add; total mengikuti.
func TestRemoveItem_RecomputesTotal(t *testing.T) {
	e := newTestEnv(t)

	student := e.makeStudent(t, "andi")
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	extra, err := e.Items.AddItem(invoiceID, AddItemInput{
		ItemType: invModel.ItemTypeFee, Description: "seragam", Quantity: 1, UnitPriceCents: 75000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(575000), e.invoice(t, invoiceID).InvoiceTotalCents)

	require.NoError(t, e.Items.RemoveItem(invoiceID, extra.InvoiceItemID))
	assert.Equal(t, int64(500000), e.invoice(t, invoiceID).InvoiceTotalCents)

	// item yang sama dua kali → 404
	err = e.Items.RemoveItem(invoiceID, extra.InvoiceItemID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = e.Items.RemoveItem(uuid.New(), extra.InvoiceItemID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// SetStatus adalah override administratif tanpa validasi pembayaran —
// dipaku di sini supaya perubahan perilakunya ketahuan.
func TestSetStatus_AdministrativeOverride(t *testing.T) {
	e := newTestEnv(t)

	student := e.makeStudent(t, "andi")
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	require.NoError(t, e.Items.SetStatus(invoiceID, invModel.InvoiceStatusIssued))
	assert.Equal(t, invModel.InvoiceStatusIssued, e.invoice(t, invoiceID).InvoiceStatus)

	// PAID tanpa pembayaran sepeser pun: diizinkan (escape hatch)
	require.NoError(t, e.Items.SetStatus(invoiceID, invModel.InvoiceStatusPaid))
	assert.Equal(t, invModel.InvoiceStatusPaid, e.invoice(t, invoiceID).InvoiceStatus)

	require.NoError(t, e.Items.SetStatus(invoiceID, invModel.InvoiceStatusVoid))
	assert.Equal(t, invModel.InvoiceStatusVoid, e.invoice(t, invoiceID).InvoiceStatus)

	err := e.Items.SetStatus(invoiceID, "hangus")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = e.Items.SetStatus(uuid.New(), invModel.InvoiceStatusIssued)
	assert.ErrorIs(t, err, ErrNotFound)
}
