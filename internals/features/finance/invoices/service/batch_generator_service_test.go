// file: internals/features/finance/invoices/service/batch_generator_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invModel "sekolahku_backend/internals/features/finance/invoices/model"
	invRepo "sekolahku_backend/internals/features/finance/invoices/repository"
	acadModel "sekolahku_backend/internals/features/school/academics/model"
)

// Scenario: grade dengan 2 siswa aktif → 2 invoice, masing-masing
// total 500000, created=2 updated=0.
func TestGenerateForGrade_CreatesOneInvoicePerActiveStudent(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	s2 := e.makeStudent(t, "bela")
	gradeID := e.makeGradeWithStudents(t, s1, s2)

	res, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), false)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 2, res.Students)

	for _, sid := range []uuid.UUID{s1, s2} {
		rows, _, err := e.Ledger.ListInvoices(nil, invRepo.InvoiceFilter{StudentID: &sid})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, invModel.InvoiceStatusDraft, rows[0].InvoiceStatus)
		assert.Equal(t, int64(500000), rows[0].InvoiceTotalCents)
	}
}

func TestGenerateForGrade_InactiveEnrollmentSkipped(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	s2 := e.makeStudent(t, "caca")
	gradeID := e.makeGradeWithStudents(t, s1)

	// s2 terdaftar tapi tidak aktif
	var kelas acadModel.SchoolClassModel
	require.NoError(t, e.DB.
		Where("school_class_grade_id = ?", gradeID).
		Take(&kelas).Error)
	require.NoError(t, e.DB.Create(&acadModel.ClassEnrollmentModel{
		ClassEnrollmentClassID:   kelas.SchoolClassID,
		ClassEnrollmentStudentID: s2,
		ClassEnrollmentStatus:    acadModel.EnrollmentInactive,
	}).Error)

	res, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Students)

	rows, _, err := e.Ledger.ListInvoices(nil, invRepo.InvoiceFilter{StudentID: &s2})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// Kontrak idempotensi: dua run identik dengan replace=true = satu run.
func TestGenerateForGrade_ReplaceTrueIsIdempotent(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	gradeID := e.makeGradeWithStudents(t, s1)

	_, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), true)
	require.NoError(t, err)

	res2, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), true)
	require.NoError(t, err)
	assert.Equal(t, 0, res2.Created)
	assert.Equal(t, 1, res2.Updated)

	rows, _, err := e.Ledger.ListInvoices(nil, invRepo.InvoiceFilter{StudentID: &s1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(500000), rows[0].InvoiceTotalCents)

	items, err := e.Ledger.ListItems(nil, rows[0].InvoiceID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// replace=false di invoice yang sudah punya item MENUMPUK item — perilaku
// lama yang sengaja dipertahankan, dipaku di sini supaya tidak berubah diam-diam.
func TestGenerateForGrade_ReplaceFalseStacksItems(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	gradeID := e.makeGradeWithStudents(t, s1)

	_, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), false)
	require.NoError(t, err)
	_, err = e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(500000), false)
	require.NoError(t, err)

	rows, _, err := e.Ledger.ListInvoices(nil, invRepo.InvoiceFilter{StudentID: &s1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000000), rows[0].InvoiceTotalCents)

	items, err := e.Ledger.ListItems(nil, rows[0].InvoiceID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGenerateForGrade_ValidatesInput(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	gradeID := e.makeGradeWithStudents(t, s1)

	// periode terbalik
	_, err := e.Batch.GenerateForGrade(gradeID, date(2026, 2, 1), date(2026, 1, 1), tuitionTemplate(1000), false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// template kosong
	_, err = e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), nil, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// quantity nol
	bad := []ItemTemplate{{ItemType: invModel.ItemTypeFee, Quantity: 0, UnitPriceCents: 100}}
	_, err = e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), bad, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// grade tidak ada
	_, err = e.Batch.GenerateForGrade(uuid.New(), date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(1000), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateForGrade_EmptyGradeStillRecordsRun(t *testing.T) {
	e := newTestEnv(t)

	g := e.makeGradeWithStudents(t) // grade tanpa siswa

	res, err := e.Batch.GenerateForGrade(g, date(2026, 1, 1), date(2026, 1, 31), tuitionTemplate(1000), true)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Updated)
	assert.Zero(t, res.Students)

	var n int64
	require.NoError(t, e.DB.Model(&invModel.InvoiceBatchRunModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

// All-or-nothing: template diskon murni membuat total negatif →
// CHECK invoice_total_cents>=0 menggagalkan transaksi → tidak ada
// invoice yang tertulis untuk siswa manapun.
func TestGenerateForGrade_RollsBackWholeBatchOnFailure(t *testing.T) {
	e := newTestEnv(t)

	s1 := e.makeStudent(t, "andi")
	s2 := e.makeStudent(t, "bela")
	gradeID := e.makeGradeWithStudents(t, s1, s2)

	discountOnly := []ItemTemplate{{
		ItemType:       invModel.ItemTypeDiscount,
		Description:    "beasiswa",
		Quantity:       1,
		UnitPriceCents: -250000,
	}}
	_, err := e.Batch.GenerateForGrade(gradeID, date(2026, 1, 1), date(2026, 1, 31), discountOnly, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)

	var n int64
	require.NoError(t, e.DB.Model(&invModel.InvoiceModel{}).Count(&n).Error)
	assert.Zero(t, n, "batch gagal tidak boleh meninggalkan tulisan parsial")
}
