// file: internals/features/school/academics/repository/academics_repository.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/school/academics/model"
)

// AcademicsRepository: lookup read-only atas data kolaborator
// (grade, kelas, enrollment, guardian link) yang dikonsumsi billing.
type AcademicsRepository struct {
	DB *gorm.DB
}

func NewAcademicsRepository(db *gorm.DB) *AcademicsRepository {
	return &AcademicsRepository{DB: db}
}

// GradeExists: cek grade hidup (soft delete aware).
func (r *AcademicsRepository) GradeExists(db *gorm.DB, gradeID uuid.UUID) (bool, error) {
	if db == nil {
		db = r.DB
	}
	var n int64
	err := db.Model(&model.GradeModel{}).
		Where("grade_id = ?", gradeID).
		Count(&n).Error
	return n > 0, err
}

// ActiveStudentIDsByGrade mengembalikan siswa dengan enrollment aktif
// di kelas manapun milik grade tsb (distinct, urut stabil).
func (r *AcademicsRepository) ActiveStudentIDsByGrade(db *gorm.DB, gradeID uuid.UUID) ([]uuid.UUID, error) {
	if db == nil {
		db = r.DB
	}
	var ids []uuid.UUID
	err := db.Model(&model.ClassEnrollmentModel{}).
		Joins("JOIN school_classes ON school_classes.school_class_id = class_enrollments.class_enrollment_class_id").
		Where("school_classes.school_class_grade_id = ?", gradeID).
		Where("school_classes.school_class_deleted_at IS NULL").
		Where("class_enrollments.class_enrollment_status = ?", model.EnrollmentActive).
		Distinct().
		Order("class_enrollment_student_id").
		Pluck("class_enrollment_student_id", &ids).Error
	return ids, err
}

// HasActiveGuardianLink: true bila guardian tertaut aktif ke siswa.
func (r *AcademicsRepository) HasActiveGuardianLink(db *gorm.DB, guardianUserID, studentUserID uuid.UUID) (bool, error) {
	if db == nil {
		db = r.DB
	}
	var n int64
	err := db.Model(&model.GuardianLinkModel{}).
		Where("guardian_link_guardian_user_id = ?", guardianUserID).
		Where("guardian_link_student_user_id = ?", studentUserID).
		Where("guardian_link_active = ?", true).
		Count(&n).Error
	return n > 0, err
}

// StudentExists: cek user siswa ada.
func (r *AcademicsRepository) StudentExists(db *gorm.DB, studentUserID uuid.UUID) (bool, error) {
	if db == nil {
		db = r.DB
	}
	var n int64
	err := db.Model(&model.UserModel{}).
		Where("user_id = ?", studentUserID).
		Count(&n).Error
	return n > 0, err
}
