// file: internals/features/school/academics/model/class_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status enrollment
// =========================================================

type ClassEnrollmentStatus string

const (
	EnrollmentActive    ClassEnrollmentStatus = "active"
	EnrollmentInactive  ClassEnrollmentStatus = "inactive"
	EnrollmentGraduated ClassEnrollmentStatus = "graduated"
)

// =========================================================
// MODEL
// =========================================================

type ClassEnrollmentModel struct {
	ClassEnrollmentID uuid.UUID `gorm:"column:class_enrollment_id;type:uuid;primaryKey" json:"class_enrollment_id"`

	// FK → school_classes(school_class_id)
	ClassEnrollmentClassID uuid.UUID `gorm:"column:class_enrollment_class_id;type:uuid;not null;index;uniqueIndex:uniq_class_student,priority:1" json:"class_enrollment_class_id"`

	// FK → users(user_id) (siswa)
	ClassEnrollmentStudentID uuid.UUID `gorm:"column:class_enrollment_student_id;type:uuid;not null;index;uniqueIndex:uniq_class_student,priority:2" json:"class_enrollment_student_id"`

	ClassEnrollmentStatus ClassEnrollmentStatus `gorm:"column:class_enrollment_status;type:varchar(20);not null;default:'active';index" json:"class_enrollment_status"`

	ClassEnrollmentCreatedAt time.Time      `gorm:"column:class_enrollment_created_at;not null;default:CURRENT_TIMESTAMP" json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt time.Time      `gorm:"column:class_enrollment_updated_at;not null;default:CURRENT_TIMESTAMP" json:"class_enrollment_updated_at"`
	ClassEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:class_enrollment_deleted_at;index" json:"-"`
}

func (ClassEnrollmentModel) TableName() string {
	return "class_enrollments"
}

func (m *ClassEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassEnrollmentID == uuid.Nil {
		m.ClassEnrollmentID = uuid.New()
	}
	if m.ClassEnrollmentStatus == "" {
		m.ClassEnrollmentStatus = EnrollmentActive
	}
	now := time.Now()
	if m.ClassEnrollmentCreatedAt.IsZero() {
		m.ClassEnrollmentCreatedAt = now
	}
	m.ClassEnrollmentUpdatedAt = now
	return nil
}

func (m *ClassEnrollmentModel) BeforeUpdate(tx *gorm.DB) error {
	m.ClassEnrollmentUpdatedAt = time.Now()
	return nil
}
