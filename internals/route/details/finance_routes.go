// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	invController "sekolahku_backend/internals/features/finance/invoices/controller"
	invRepo "sekolahku_backend/internals/features/finance/invoices/repository"
	invRoutes "sekolahku_backend/internals/features/finance/invoices/routes"
	invService "sekolahku_backend/internals/features/finance/invoices/service"
	academicsRepo "sekolahku_backend/internals/features/school/academics/repository"
)

// FinanceRoutes merakit dependensi billing SEKALI (lock pembayaran
// per-invoice hidup di satu instance PaymentProcessor) lalu memasang
// surface staff & parent.
func FinanceRoutes(staff, parent fiber.Router, db *gorm.DB) {
	ledger := invRepo.NewLedgerRepository(db)
	academics := academicsRepo.NewAcademicsRepository(db)

	items := invService.NewItemLedger(db, ledger)
	batch := invService.NewBatchGenerator(db, ledger, academics, items)
	pay := invService.NewPaymentProcessor(db, ledger, academics)

	staffCtl := invController.NewStaffInvoiceController(db, ledger, items, batch, pay)
	parentCtl := invController.NewParentInvoiceController(db, ledger, pay)

	invRoutes.StaffInvoiceRoutes(staff, staffCtl)
	invRoutes.ParentInvoiceRoutes(parent, parentCtl)
}
