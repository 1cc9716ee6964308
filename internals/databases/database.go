package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	invoiceModel "sekolahku_backend/internals/features/finance/invoices/model"
	academicsModel "sekolahku_backend/internals/features/school/academics/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sekolahku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan migrasi skema SATU KALI saat startup.
// Semua DDL lewat sini — handler tidak pernah bikin tabel sendiri.
func Migrate() {
	if err := MigrateOn(DB); err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}
	log.Println("✅ Skema siap.")
}

// MigrateOn dipakai juga oleh test harness (DB in-memory).
func MigrateOn(db *gorm.DB) error {
	return db.AutoMigrate(
		// collaborator data (dibaca oleh billing)
		&academicsModel.UserModel{},
		&academicsModel.GradeModel{},
		&academicsModel.SchoolClassModel{},
		&academicsModel.ClassEnrollmentModel{},
		&academicsModel.GuardianLinkModel{},
		// billing ledger
		&invoiceModel.InvoiceModel{},
		&invoiceModel.InvoiceItemModel{},
		&invoiceModel.PaymentModel{},
		&invoiceModel.InvoiceBatchRunModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
