// file: internals/features/school/academics/model/guardian_link_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GuardianLinkModel: relasi wali ↔ siswa. Dibaca untuk otorisasi
// pembayaran/tampilan tagihan; pengelolaannya di layanan lain.
type GuardianLinkModel struct {
	GuardianLinkID uuid.UUID `gorm:"column:guardian_link_id;type:uuid;primaryKey" json:"guardian_link_id"`

	// FK → users(user_id) (akun wali)
	GuardianLinkGuardianUserID uuid.UUID `gorm:"column:guardian_link_guardian_user_id;type:uuid;not null;index;uniqueIndex:uniq_guardian_student,priority:1" json:"guardian_link_guardian_user_id"`

	// FK → users(user_id) (siswa)
	GuardianLinkStudentUserID uuid.UUID `gorm:"column:guardian_link_student_user_id;type:uuid;not null;index;uniqueIndex:uniq_guardian_student,priority:2" json:"guardian_link_student_user_id"`

	// Tag relasi bebas: father/mother/aunt/payer dsb.
	GuardianLinkRelations pq.StringArray `gorm:"column:guardian_link_relations;type:text[]" json:"guardian_link_relations,omitempty"`

	GuardianLinkActive bool `gorm:"column:guardian_link_active;not null;default:true;index" json:"guardian_link_active"`

	GuardianLinkCreatedAt time.Time      `gorm:"column:guardian_link_created_at;not null;default:CURRENT_TIMESTAMP" json:"guardian_link_created_at"`
	GuardianLinkUpdatedAt time.Time      `gorm:"column:guardian_link_updated_at;not null;default:CURRENT_TIMESTAMP" json:"guardian_link_updated_at"`
	GuardianLinkDeletedAt gorm.DeletedAt `gorm:"column:guardian_link_deleted_at;index" json:"-"`
}

func (GuardianLinkModel) TableName() string {
	return "guardian_links"
}

func (m *GuardianLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.GuardianLinkID == uuid.Nil {
		m.GuardianLinkID = uuid.New()
	}
	now := time.Now()
	if m.GuardianLinkCreatedAt.IsZero() {
		m.GuardianLinkCreatedAt = now
	}
	m.GuardianLinkUpdatedAt = now
	return nil
}
