// file: internals/features/school/academics/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel: baris user minimum yang dikonsumsi subsistem billing
// (identitas siswa/wali/staff). Manajemen user penuh ada di layanan lain.
type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserName         string    `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null;index" json:"user_role"` // staff|parent|student
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(100);not null" json:"-"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;not null;default:CURRENT_TIMESTAMP" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;not null;default:CURRENT_TIMESTAMP" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	now := time.Now()
	if m.UserCreatedAt.IsZero() {
		m.UserCreatedAt = now
	}
	m.UserUpdatedAt = now
	return nil
}
