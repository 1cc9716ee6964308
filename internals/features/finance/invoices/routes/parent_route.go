// file: internals/features/finance/invoices/routes/parent_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"

	controller "sekolahku_backend/internals/features/finance/invoices/controller"
	middlewares "sekolahku_backend/internals/middlewares"
)

// ParentInvoiceRoutes: surface wali (guardian-authorized di level service).
func ParentInvoiceRoutes(r fiber.Router, h *controller.ParentInvoiceController) {
	children := r.Group("/children/:studentId")
	children.Get("/invoices", h.ListChildInvoices)
	children.Get("/invoices/:invoiceId/items", h.ListChildInvoiceItems)
	children.Get("/fee-status", h.FeeStatus)

	// endpoint bayar dilimit lebih ketat
	r.Post("/invoices/:invoiceId/pay", middlewares.PaymentRateLimiter(), h.PayInvoice)
}
