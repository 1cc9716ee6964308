// file: internals/features/finance/invoices/service/service_test.go
//
// Harness test: DB GORM sqlite (pure Go) per test + fixture akademik
// minimum. Semua skenario billing dijalankan lewat service, persis
// seperti jalur HTTP memakainya.
package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "sekolahku_backend/internals/databases"
	invModel "sekolahku_backend/internals/features/finance/invoices/model"
	invRepo "sekolahku_backend/internals/features/finance/invoices/repository"
	acadModel "sekolahku_backend/internals/features/school/academics/model"
	acadRepo "sekolahku_backend/internals/features/school/academics/repository"
)

type testEnv struct {
	DB        *gorm.DB
	Ledger    *invRepo.LedgerRepository
	Academics *acadRepo.AcademicsRepository
	Items     *ItemLedger
	Batch     *BatchGenerator
	Pay       *PaymentProcessor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "billing_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateOn(db))

	ledger := invRepo.NewLedgerRepository(db)
	academics := acadRepo.NewAcademicsRepository(db)
	items := NewItemLedger(db, ledger)

	return &testEnv{
		DB:        db,
		Ledger:    ledger,
		Academics: academics,
		Items:     items,
		Batch:     NewBatchGenerator(db, ledger, academics, items),
		Pay:       NewPaymentProcessor(db, ledger, academics),
	}
}

/* ===================== fixture helpers ===================== */

func (e *testEnv) makeStudent(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := acadModel.UserModel{
		UserName:         name,
		UserEmail:        name + "@test.local",
		UserRole:         "student",
		UserPasswordHash: "x",
	}
	require.NoError(t, e.DB.Create(&u).Error)
	return u.UserID
}

func (e *testEnv) makeParent(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := acadModel.UserModel{
		UserName:         name,
		UserEmail:        name + "@test.local",
		UserRole:         "parent",
		UserPasswordHash: "x",
	}
	require.NoError(t, e.DB.Create(&u).Error)
	return u.UserID
}

// makeGradeWithStudents: satu grade + satu kelas + enrollment aktif
// untuk tiap siswa yang diberikan.
func (e *testEnv) makeGradeWithStudents(t *testing.T, studentIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	g := acadModel.GradeModel{GradeName: "Kelas Uji", GradeLevel: 1}
	require.NoError(t, e.DB.Create(&g).Error)

	k := acadModel.SchoolClassModel{SchoolClassGradeID: g.GradeID, SchoolClassName: "Uji-A"}
	require.NoError(t, e.DB.Create(&k).Error)

	for _, sid := range studentIDs {
		en := acadModel.ClassEnrollmentModel{
			ClassEnrollmentClassID:   k.SchoolClassID,
			ClassEnrollmentStudentID: sid,
			ClassEnrollmentStatus:    acadModel.EnrollmentActive,
		}
		require.NoError(t, e.DB.Create(&en).Error)
	}
	return g.GradeID
}

func (e *testEnv) linkGuardian(t *testing.T, guardianID, studentID uuid.UUID) {
	t.Helper()
	g := acadModel.GuardianLinkModel{
		GuardianLinkGuardianUserID: guardianID,
		GuardianLinkStudentUserID:  studentID,
		GuardianLinkActive:         true,
	}
	require.NoError(t, e.DB.Create(&g).Error)
}

// makeInvoiceWithTotal: invoice DRAFT satu item tuition senilai total.
func (e *testEnv) makeInvoiceWithTotal(t *testing.T, studentID uuid.UUID, totalCents int64) uuid.UUID {
	t.Helper()
	inv, created, err := e.Ledger.FindOrCreateByPeriod(nil, studentID, date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)
	require.True(t, created)

	_, err = e.Items.AddItem(inv.InvoiceID, AddItemInput{
		ItemType:       invModel.ItemTypeTuition,
		Description:    "SPP Januari",
		Quantity:       1,
		UnitPriceCents: totalCents,
	})
	require.NoError(t, err)
	return inv.InvoiceID
}

func (e *testEnv) invoice(t *testing.T, id uuid.UUID) *invModel.InvoiceModel {
	t.Helper()
	inv, err := e.Ledger.FindInvoice(nil, id)
	require.NoError(t, err)
	return inv
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tuitionTemplate(unitPriceCents int64) []ItemTemplate {
	return []ItemTemplate{{
		ItemType:       invModel.ItemTypeTuition,
		Description:    "SPP",
		Quantity:       1,
		UnitPriceCents: unitPriceCents,
	}}
}
