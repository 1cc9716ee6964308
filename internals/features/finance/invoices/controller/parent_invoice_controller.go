// file: internals/features/finance/invoices/controller/parent_invoice_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/invoices/dto"
	repo "sekolahku_backend/internals/features/finance/invoices/repository"
	service "sekolahku_backend/internals/features/finance/invoices/service"
	helper "sekolahku_backend/internals/helpers"
)

type ParentInvoiceController struct {
	DB     *gorm.DB
	Ledger *repo.LedgerRepository
	Pay    *service.PaymentProcessor
}

func NewParentInvoiceController(db *gorm.DB, ledger *repo.LedgerRepository, pay *service.PaymentProcessor) *ParentInvoiceController {
	return &ParentInvoiceController{DB: db, Ledger: ledger, Pay: pay}
}

func principalFromToken(c *fiber.Ctx) (service.Principal, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.Principal{}, err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return service.Principal{}, err
	}
	return service.Principal{UserID: userID, Role: role}, nil
}

// =======================================================
// LIST INVOICE ANAK (guardian-authorized)
// GET /parent/children/:studentId/invoices
// =======================================================

func (h *ParentInvoiceController) ListChildInvoices(c *fiber.Ctx) error {
	p, err := principalFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid studentId")
	}

	if err := h.Pay.EnsureGuardianOf(p, studentID); err != nil {
		return jsonServiceError(c, err)
	}

	rows, _, err := h.Ledger.ListInvoices(nil, repo.InvoiceFilter{StudentID: &studentID})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.FromInvoiceModels(rows))
}

// =======================================================
// LIST ITEM DI SATU INVOICE ANAK
// GET /parent/children/:studentId/invoices/:invoiceId/items
// =======================================================

func (h *ParentInvoiceController) ListChildInvoiceItems(c *fiber.Ctx) error {
	p, err := principalFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid studentId")
	}
	invoiceID, err := parseUUIDParam(c, "invoiceId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoiceId")
	}

	if err := h.Pay.EnsureGuardianOf(p, studentID); err != nil {
		return jsonServiceError(c, err)
	}

	// pastikan invoice memang milik siswa di path
	inv, err := h.Ledger.FindInvoice(nil, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if inv.InvoiceStudentID != studentID {
		return helper.JsonError(c, fiber.StatusNotFound, "Invoice tidak ditemukan")
	}

	items, err := h.Ledger.ListItems(nil, invoiceID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.FromInvoiceItemModels(items))
}

// =======================================================
// BAYAR INVOICE
// POST /parent/invoices/:invoiceId/pay
// =======================================================

func (h *ParentInvoiceController) PayInvoice(c *fiber.Ctx) error {
	p, err := principalFromToken(c)
	if err != nil {
		return err
	}
	invoiceID, err := parseUUIDParam(c, "invoiceId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoiceId")
	}

	var in dto.PayInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.Pay.ApplyPayment(invoiceID, p, in.AmountCents, in.Method)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "pembayaran diterima", dto.PayInvoiceResponse{
		PaidCents: res.PaidCents,
		NewStatus: res.NewStatus,
	})
}

// =======================================================
// FEE STATUS ANAK
// GET /parent/children/:studentId/fee-status
// =======================================================

func (h *ParentInvoiceController) FeeStatus(c *fiber.Ctx) error {
	p, err := principalFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid studentId")
	}

	if err := h.Pay.EnsureGuardianOf(p, studentID); err != nil {
		return jsonServiceError(c, err)
	}

	fs, err := h.Pay.FeeStatusByStudent(studentID)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "", dto.FeeStatusResponse{
		TotalBilled: fs.TotalBilled,
		TotalPaid:   fs.TotalPaid,
		DueCents:    fs.DueCents,
	})
}
