// file: internals/features/finance/invoices/model/invoice_batch_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceBatchRunModel: catatan operasional satu run generate-per-grade.
// Ditulis di transaksi batch yang sama; tidak dibaca algoritma manapun.
type InvoiceBatchRunModel struct {
	InvoiceBatchRunID uuid.UUID `gorm:"column:invoice_batch_run_id;type:uuid;primaryKey" json:"invoice_batch_run_id"`

	InvoiceBatchRunGradeID     uuid.UUID `gorm:"column:invoice_batch_run_grade_id;type:uuid;not null;index" json:"invoice_batch_run_grade_id"`
	InvoiceBatchRunPeriodStart time.Time `gorm:"column:invoice_batch_run_period_start;type:date;not null" json:"invoice_batch_run_period_start"`
	InvoiceBatchRunPeriodEnd   time.Time `gorm:"column:invoice_batch_run_period_end;type:date;not null" json:"invoice_batch_run_period_end"`
	InvoiceBatchRunReplace     bool      `gorm:"column:invoice_batch_run_replace;not null;default:false" json:"invoice_batch_run_replace"`

	// Snapshot template item yang dikirim caller (JSON apa adanya)
	InvoiceBatchRunTemplates datatypes.JSON `gorm:"column:invoice_batch_run_templates;type:jsonb" json:"invoice_batch_run_templates"`

	InvoiceBatchRunCreated  int `gorm:"column:invoice_batch_run_created;not null;default:0" json:"invoice_batch_run_created"`
	InvoiceBatchRunUpdated  int `gorm:"column:invoice_batch_run_updated;not null;default:0" json:"invoice_batch_run_updated"`
	InvoiceBatchRunStudents int `gorm:"column:invoice_batch_run_students;not null;default:0" json:"invoice_batch_run_students"`

	InvoiceBatchRunCreatedAt time.Time `gorm:"column:invoice_batch_run_created_at;not null;default:CURRENT_TIMESTAMP" json:"invoice_batch_run_created_at"`
}

func (InvoiceBatchRunModel) TableName() string {
	return "invoice_batch_runs"
}

func (m *InvoiceBatchRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceBatchRunID == uuid.Nil {
		m.InvoiceBatchRunID = uuid.New()
	}
	if m.InvoiceBatchRunCreatedAt.IsZero() {
		m.InvoiceBatchRunCreatedAt = time.Now()
	}
	return nil
}
