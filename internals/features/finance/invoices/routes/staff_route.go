// file: internals/features/finance/invoices/routes/staff_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"

	controller "sekolahku_backend/internals/features/finance/invoices/controller"
)

// StaffInvoiceRoutes: surface staff (role-gated di group /staff).
func StaffInvoiceRoutes(r fiber.Router, h *controller.StaffInvoiceController) {
	inv := r.Group("/invoices")
	inv.Post("/batch-by-grade", h.GenerateByGrade)
	inv.Get("/", h.ListInvoices)
	inv.Get("/:id", h.GetInvoice)
	inv.Post("/:id/items", h.AddItem)
	inv.Delete("/:id/items/:itemId", h.RemoveItem)
	inv.Patch("/:id", h.PatchStatus)

	r.Get("/fee-status", h.FeeStatus)
}
