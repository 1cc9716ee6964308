// file: internals/features/school/academics/model/school_class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolClassModel: kelas di dalam satu grade (mis. "1A", "1B").
type SchoolClassModel struct {
	SchoolClassID      uuid.UUID `gorm:"column:school_class_id;type:uuid;primaryKey" json:"school_class_id"`
	SchoolClassGradeID uuid.UUID `gorm:"column:school_class_grade_id;type:uuid;not null;index" json:"school_class_grade_id"`
	SchoolClassName    string    `gorm:"column:school_class_name;type:varchar(60);not null" json:"school_class_name"`

	SchoolClassCreatedAt time.Time      `gorm:"column:school_class_created_at;not null;default:CURRENT_TIMESTAMP" json:"school_class_created_at"`
	SchoolClassUpdatedAt time.Time      `gorm:"column:school_class_updated_at;not null;default:CURRENT_TIMESTAMP" json:"school_class_updated_at"`
	SchoolClassDeletedAt gorm.DeletedAt `gorm:"column:school_class_deleted_at;index" json:"-"`
}

func (SchoolClassModel) TableName() string {
	return "school_classes"
}

func (m *SchoolClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolClassID == uuid.Nil {
		m.SchoolClassID = uuid.New()
	}
	now := time.Now()
	if m.SchoolClassCreatedAt.IsZero() {
		m.SchoolClassCreatedAt = now
	}
	m.SchoolClassUpdatedAt = now
	return nil
}
