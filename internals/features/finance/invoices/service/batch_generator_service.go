// file: internals/features/finance/invoices/service/batch_generator_service.go
package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/finance/invoices/model"
	repo "sekolahku_backend/internals/features/finance/invoices/repository"
	academics "sekolahku_backend/internals/features/school/academics/repository"
)

// BatchGenerator: generate/update satu invoice per siswa aktif di satu
// grade untuk satu periode. Seluruh run = SATU transaksi; gagal di siswa
// manapun → rollback total (all-or-nothing).
type BatchGenerator struct {
	DB        *gorm.DB
	Ledger    *repo.LedgerRepository
	Academics *academics.AcademicsRepository
	Items     *ItemLedger
}

func NewBatchGenerator(db *gorm.DB, ledger *repo.LedgerRepository, acad *academics.AcademicsRepository, items *ItemLedger) *BatchGenerator {
	return &BatchGenerator{DB: db, Ledger: ledger, Academics: acad, Items: items}
}

type ItemTemplate struct {
	ItemType       model.InvoiceItemType `json:"item_type"`
	Description    string                `json:"description"`
	Quantity       float64               `json:"quantity"`
	UnitPriceCents int64                 `json:"unit_price_cents"`
}

type BatchResult struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Students int `json:"students"`
}

// GenerateForGrade — kontrak idempotensi: dua kali berturut-turut dengan
// argumen identik dan replace=true menghasilkan state ledger yang sama
// dengan sekali jalan. replace=false di invoice yang sudah punya item
// MENUMPUK item (duplikasi total) — perilaku lama yang dipertahankan
// apa adanya; pakai replace=true untuk re-issue bersih.
func (s *BatchGenerator) GenerateForGrade(gradeID uuid.UUID, periodStart, periodEnd time.Time, templates []ItemTemplate, replace bool) (BatchResult, error) {
	var res BatchResult

	if !periodStart.Before(periodEnd) {
		return res, invalidf("billing_period_start harus sebelum billing_period_end")
	}
	if len(templates) == 0 {
		return res, invalidf("item templates tidak boleh kosong")
	}
	for i, t := range templates {
		if !model.ValidInvoiceItemType(t.ItemType) {
			return res, invalidf("templates[%d]: item_type %q tidak dikenal", i, t.ItemType)
		}
		if t.Quantity <= 0 {
			return res, invalidf("templates[%d]: quantity harus > 0", i)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Academics.GradeExists(tx, gradeID)
		if err != nil {
			return err
		}
		if !ok {
			return notFoundf("grade %s tidak ditemukan", gradeID)
		}

		studentIDs, err := s.Academics.ActiveStudentIDsByGrade(tx, gradeID)
		if err != nil {
			return err
		}
		res.Students = len(studentIDs)

		for _, sid := range studentIDs {
			inv, created, err := s.Ledger.FindOrCreateByPeriod(tx, sid, periodStart, periodEnd)
			if err != nil {
				return err
			}
			if created {
				res.Created++
			} else {
				res.Updated++
				if replace {
					// re-issue penuh: bersihkan item lama dulu
					if err := s.Ledger.DeleteItems(tx, inv.InvoiceID); err != nil {
						return err
					}
				}
			}

			// setiap template lewat Item Ledger → total ikut ter-recompute
			for _, t := range templates {
				if _, err := s.Items.AddItemTx(tx, inv.InvoiceID, AddItemInput{
					ItemType:       t.ItemType,
					Description:    t.Description,
					Quantity:       t.Quantity,
					UnitPriceCents: t.UnitPriceCents,
				}); err != nil {
					return err
				}
			}
		}

		// catatan operasional run (snapshot template apa adanya)
		snap, err := json.Marshal(templates)
		if err != nil {
			return err
		}
		run := &model.InvoiceBatchRunModel{
			InvoiceBatchRunGradeID:     gradeID,
			InvoiceBatchRunPeriodStart: periodStart,
			InvoiceBatchRunPeriodEnd:   periodEnd,
			InvoiceBatchRunReplace:     replace,
			InvoiceBatchRunTemplates:   datatypes.JSON(snap),
			InvoiceBatchRunCreated:     res.Created,
			InvoiceBatchRunUpdated:     res.Updated,
			InvoiceBatchRunStudents:    res.Students,
		}
		return s.Ledger.InsertBatchRun(tx, run)
	})
	if err != nil {
		return BatchResult{}, wrapTx(err)
	}

	log.Printf("[BATCH] grade=%s period=%s..%s replace=%v created=%d updated=%d students=%d",
		gradeID, periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"),
		replace, res.Created, res.Updated, res.Students)
	return res, nil
}
