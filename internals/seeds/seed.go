// file: internals/seeds/seed.go
package seeds

import (
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	model "sekolahku_backend/internals/features/school/academics/model"
)

// RunIfEnabled: fixture dev (idempotent) — satu grade, dua kelas, tiga
// siswa (dua aktif), wali + staff. Aktif hanya bila SEED_ON_START=true.
func RunIfEnabled(db *gorm.DB) {
	if !truthy("SEED_ON_START") {
		return
	}
	if err := Run(db); err != nil {
		log.Printf("[SEED] gagal: %v", err)
		return
	}
	log.Println("[SEED] fixture dev siap.")
}

func Run(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := upsertUser(tx, "Bu Sari (TU)", "staff@sekolahku.local", "staff", "staff123"); err != nil {
			return err
		}

		wali, err := upsertUser(tx, "Pak Budi", "wali@sekolahku.local", "parent", "wali123")
		if err != nil {
			return err
		}

		siswa1, err := upsertUser(tx, "Andi", "andi@sekolahku.local", "student", "siswa123")
		if err != nil {
			return err
		}
		siswa2, err := upsertUser(tx, "Bela", "bela@sekolahku.local", "student", "siswa123")
		if err != nil {
			return err
		}
		siswa3, err := upsertUser(tx, "Caca (pindah)", "caca@sekolahku.local", "student", "siswa123")
		if err != nil {
			return err
		}

		var grade model.GradeModel
		if err := tx.Where("grade_name = ?", "Kelas 1").
			FirstOrCreate(&grade, model.GradeModel{GradeName: "Kelas 1", GradeLevel: 1}).Error; err != nil {
			return err
		}

		kelasA, err := upsertClass(tx, grade.GradeID, "1A")
		if err != nil {
			return err
		}
		kelasB, err := upsertClass(tx, grade.GradeID, "1B")
		if err != nil {
			return err
		}

		// dua aktif, satu inactive (tidak ikut batch)
		if err := upsertEnrollment(tx, kelasA, siswa1, model.EnrollmentActive); err != nil {
			return err
		}
		if err := upsertEnrollment(tx, kelasB, siswa2, model.EnrollmentActive); err != nil {
			return err
		}
		if err := upsertEnrollment(tx, kelasA, siswa3, model.EnrollmentInactive); err != nil {
			return err
		}

		// wali tertaut ke dua siswa aktif
		if err := upsertGuardianLink(tx, wali, siswa1, []string{"father", "payer"}); err != nil {
			return err
		}
		return upsertGuardianLink(tx, wali, siswa2, []string{"father"})
	})
}

func upsertUser(tx *gorm.DB, name, email, role, password string) (uuid.UUID, error) {
	var u model.UserModel
	err := tx.Where("user_email = ?", email).First(&u).Error
	if err == nil {
		return u.UserID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return uuid.Nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}
	u = model.UserModel{
		UserName:         name,
		UserEmail:        email,
		UserRole:         role,
		UserPasswordHash: string(hash),
	}
	if err := tx.Create(&u).Error; err != nil {
		return uuid.Nil, err
	}
	return u.UserID, nil
}

func upsertClass(tx *gorm.DB, gradeID uuid.UUID, name string) (uuid.UUID, error) {
	var k model.SchoolClassModel
	err := tx.Where("school_class_grade_id = ? AND school_class_name = ?", gradeID, name).
		FirstOrCreate(&k, model.SchoolClassModel{
			SchoolClassGradeID: gradeID,
			SchoolClassName:    name,
		}).Error
	return k.SchoolClassID, err
}

func upsertEnrollment(tx *gorm.DB, classID, studentID uuid.UUID, status model.ClassEnrollmentStatus) error {
	var e model.ClassEnrollmentModel
	err := tx.Where("class_enrollment_class_id = ? AND class_enrollment_student_id = ?", classID, studentID).
		First(&e).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return tx.Create(&model.ClassEnrollmentModel{
		ClassEnrollmentClassID:   classID,
		ClassEnrollmentStudentID: studentID,
		ClassEnrollmentStatus:    status,
	}).Error
}

func upsertGuardianLink(tx *gorm.DB, guardianID, studentID uuid.UUID, relations []string) error {
	var g model.GuardianLinkModel
	err := tx.Where("guardian_link_guardian_user_id = ? AND guardian_link_student_user_id = ?", guardianID, studentID).
		First(&g).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return tx.Create(&model.GuardianLinkModel{
		GuardianLinkGuardianUserID: guardianID,
		GuardianLinkStudentUserID:  studentID,
		GuardianLinkRelations:      pq.StringArray(relations),
		GuardianLinkActive:         true,
	}).Error
}

func truthy(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "true" || v == "1" || v == "yes"
}
