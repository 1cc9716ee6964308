// file: internals/features/finance/invoices/service/payment_processor_service_test.go
package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invModel "sekolahku_backend/internals/features/finance/invoices/model"
)

// Scenario: total 500000 → bayar 200000 (partial) → bayar 300000 (lunas)
// → bayar lagi gagal NothingToPay.
func TestApplyPayment_PartialThenFullThenNothing(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	p := Principal{UserID: parent, Role: "parent"}

	res, err := e.Pay.ApplyPayment(invoiceID, p, 200000, invModel.PaymentMethodTransfer)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), res.PaidCents)
	assert.Equal(t, invModel.InvoiceStatusPartiallyPaid, res.NewStatus)

	res, err = e.Pay.ApplyPayment(invoiceID, p, 300000, invModel.PaymentMethodTransfer)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), res.PaidCents)
	assert.Equal(t, invModel.InvoiceStatusPaid, res.NewStatus)

	_, err = e.Pay.ApplyPayment(invoiceID, p, 100000, invModel.PaymentMethodTransfer)
	assert.ErrorIs(t, err, ErrNothingToPay)

	// status tersimpan di baris invoice juga
	assert.Equal(t, invModel.InvoiceStatusPaid, e.invoice(t, invoiceID).InvoiceStatus)
}

// Jumlah yang diminta di-clamp ke sisa due; tidak pernah negatif.
func TestApplyPayment_ClampsToOutstandingDue(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	p := Principal{UserID: parent, Role: "parent"}

	res, err := e.Pay.ApplyPayment(invoiceID, p, 999999999, invModel.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), res.PaidCents)
	assert.Equal(t, invModel.InvoiceStatusPaid, res.NewStatus)

	paid, err := e.Ledger.SumPaid(nil, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), paid)
}

func TestApplyPayment_NonPositiveAmountRejected(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	p := Principal{UserID: parent, Role: "parent"}

	_, err := e.Pay.ApplyPayment(invoiceID, p, 0, invModel.PaymentMethodCash)
	assert.ErrorIs(t, err, ErrNothingToPay)

	_, err = e.Pay.ApplyPayment(invoiceID, p, -5000, invModel.PaymentMethodCash)
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestApplyPayment_GuardianAuthorization(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	stranger := e.makeParent(t, "orang-lain")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	// wali yang tidak tertaut ditolak
	_, err := e.Pay.ApplyPayment(invoiceID, Principal{UserID: stranger, Role: "parent"}, 100000, invModel.PaymentMethodCash)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// staff lolos tanpa guardian link
	res, err := e.Pay.ApplyPayment(invoiceID, Principal{UserID: stranger, Role: "staff"}, 100000, invModel.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), res.PaidCents)
}

func TestApplyPayment_UnknownInvoiceAndMethod(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)
	p := Principal{UserID: parent, Role: "parent"}

	_, err := e.Pay.ApplyPayment(invoiceID, p, 1000, "barter")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.Pay.ApplyPayment(e.makeStudent(t, "bukan-invoice"), p, 1000, invModel.PaymentMethodCash)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Scenario concurrency: dua pembayaran penuh bersamaan di invoice yang
// sama → tepat satu menang, Σ payment SUCCESS tetap == total.
func TestApplyPayment_ConcurrentFullPaymentsSingleWinner(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 300000)

	p := Principal{UserID: parent, Role: "parent"}

	var wg sync.WaitGroup
	results := make([]error, 2)
	paid := make([]int64, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := e.Pay.ApplyPayment(invoiceID, p, 300000, invModel.PaymentMethodWallet)
			results[i] = err
			paid[i] = res.PaidCents
		}(i)
	}
	wg.Wait()

	winners, losers := 0, 0
	for i := 0; i < 2; i++ {
		if results[i] == nil {
			winners++
			assert.Equal(t, int64(300000), paid[i])
		} else {
			losers++
			assert.ErrorIs(t, results[i], ErrNothingToPay)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)

	sum, err := e.Ledger.SumPaid(nil, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), sum, "tidak boleh over-payment")
	assert.Equal(t, invModel.InvoiceStatusPaid, e.invoice(t, invoiceID).InvoiceStatus)
}

// VOID tidak memblokir pembayaran (escape hatch yang dipertahankan):
// selama masih ada due, bayar tetap bisa.
func TestApplyPayment_VoidInvoiceStillPayable(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	invoiceID := e.makeInvoiceWithTotal(t, student, 500000)

	require.NoError(t, e.Items.SetStatus(invoiceID, invModel.InvoiceStatusVoid))

	res, err := e.Pay.ApplyPayment(invoiceID, Principal{UserID: parent, Role: "parent"}, 500000, invModel.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, invModel.InvoiceStatusPaid, res.NewStatus)
}

/* ===================== FEE STATUS ===================== */

// Scenario: dua invoice (500000 & 200000), dibayar 500000 & 100000 →
// total_billed=700000, total_paid=600000, due=100000 — sama dengan
// jumlah due per-invoice (0 + 100000).
func TestFeeStatus_AggregatesAcrossInvoices(t *testing.T) {
	e := newTestEnv(t)

	parent := e.makeParent(t, "budi")
	student := e.makeStudent(t, "andi")
	e.linkGuardian(t, parent, student)
	p := Principal{UserID: parent, Role: "parent"}

	inv1, created, err := e.Ledger.FindOrCreateByPeriod(nil, student, date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)
	require.True(t, created)
	_, err = e.Items.AddItem(inv1.InvoiceID, AddItemInput{ItemType: invModel.ItemTypeTuition, Quantity: 1, UnitPriceCents: 500000})
	require.NoError(t, err)

	inv2, created, err := e.Ledger.FindOrCreateByPeriod(nil, student, date(2026, 2, 1), date(2026, 2, 28))
	require.NoError(t, err)
	require.True(t, created)
	_, err = e.Items.AddItem(inv2.InvoiceID, AddItemInput{ItemType: invModel.ItemTypeMeal, Quantity: 1, UnitPriceCents: 200000})
	require.NoError(t, err)

	_, err = e.Pay.ApplyPayment(inv1.InvoiceID, p, 500000, invModel.PaymentMethodTransfer)
	require.NoError(t, err)
	_, err = e.Pay.ApplyPayment(inv2.InvoiceID, p, 100000, invModel.PaymentMethodTransfer)
	require.NoError(t, err)

	fs, err := e.Pay.FeeStatusByStudent(student)
	require.NoError(t, err)
	assert.Equal(t, int64(700000), fs.TotalBilled)
	assert.Equal(t, int64(600000), fs.TotalPaid)
	assert.Equal(t, int64(100000), fs.DueCents)

	// identik dengan jumlah due per-invoice
	var perInvoiceDue int64
	for _, id := range []uuid.UUID{inv1.InvoiceID, inv2.InvoiceID} {
		inv := e.invoice(t, id)
		paid, err := e.Ledger.SumPaid(nil, id)
		require.NoError(t, err)
		perInvoiceDue += inv.InvoiceTotalCents - paid
	}
	assert.Equal(t, fs.DueCents, perInvoiceDue)
}

func TestFeeStatus_UnknownStudent(t *testing.T) {
	e := newTestEnv(t)

	// siswa tanpa invoice → semua nol
	fs, err := e.Pay.FeeStatusByStudent(e.makeStudent(t, "tanpa-tagihan"))
	require.NoError(t, err)
	assert.Zero(t, fs.TotalBilled)
	assert.Zero(t, fs.DueCents)

	_, err = e.Pay.FeeStatusByStudent(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
