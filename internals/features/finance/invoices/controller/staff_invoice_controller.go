// file: internals/features/finance/invoices/controller/staff_invoice_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/invoices/dto"
	repo "sekolahku_backend/internals/features/finance/invoices/repository"
	service "sekolahku_backend/internals/features/finance/invoices/service"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type StaffInvoiceController struct {
	DB     *gorm.DB
	Ledger *repo.LedgerRepository
	Items  *service.ItemLedger
	Batch  *service.BatchGenerator
	Pay    *service.PaymentProcessor
}

func NewStaffInvoiceController(db *gorm.DB, ledger *repo.LedgerRepository, items *service.ItemLedger, batch *service.BatchGenerator, pay *service.PaymentProcessor) *StaffInvoiceController {
	return &StaffInvoiceController{DB: db, Ledger: ledger, Items: items, Batch: batch, Pay: pay}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// BATCH GENERATE
// POST /staff/invoices/batch-by-grade
// =======================================================

func (h *StaffInvoiceController) GenerateByGrade(c *fiber.Ctx) error {
	var in dto.GenerateByGradeRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	start, end := in.ParsePeriod()
	templates := make([]service.ItemTemplate, 0, len(in.Items))
	for _, t := range in.Items {
		templates = append(templates, service.ItemTemplate{
			ItemType:       t.ItemType,
			Description:    t.Description,
			Quantity:       t.Quantity,
			UnitPriceCents: t.UnitPriceCents,
		})
	}

	res, err := h.Batch.GenerateForGrade(in.GradeID, start, end, templates, in.Replace)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "batch generate selesai", dto.GenerateByGradeResponse{
		Created:  res.Created,
		Updated:  res.Updated,
		Students: res.Students,
	})
}

// =======================================================
// LIST
// GET /staff/invoices?student_user_id=&status=&page=&per_page=
// =======================================================

func (h *StaffInvoiceController) ListInvoices(c *fiber.Ctx) error {
	var q dto.ListInvoicesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid")
	}
	if err := validate.Struct(q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Ledger.ListInvoices(nil, repo.InvoiceFilter{
		StudentID: q.StudentUserID,
		Status:    q.Status,
		Limit:     paging.Limit,
		Offset:    paging.Offset,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.FromInvoiceModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================================================
// DETAIL (invoice + items + payments)
// GET /staff/invoices/:id
// =======================================================

func (h *StaffInvoiceController) GetInvoice(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	inv, err := h.Ledger.FindInvoice(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	items, err := h.Ledger.ListItems(nil, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	payments, err := h.Ledger.ListPayments(nil, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "", dto.InvoiceDetailResponse{
		Invoice:  dto.ToInvoiceResponse(*inv),
		Items:    dto.FromInvoiceItemModels(items),
		Payments: dto.FromPaymentModels(payments),
	})
}

// =======================================================
// ADD ITEM (recompute total, status tidak disentuh)
// POST /staff/invoices/:id/items
// =======================================================

func (h *StaffInvoiceController) AddItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.AddInvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	item, err := h.Items.AddItem(id, service.AddItemInput{
		ItemType:       in.ItemType,
		Description:    in.Description,
		Quantity:       in.Quantity,
		UnitPriceCents: in.UnitPriceCents,
	})
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "item ditambahkan", dto.ToInvoiceItemResponse(*item))
}

// =======================================================
// REMOVE ITEM (koreksi = hapus lalu tambah lagi)
// DELETE /staff/invoices/:id/items/:itemId
// =======================================================

func (h *StaffInvoiceController) RemoveItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid itemId")
	}

	if err := h.Items.RemoveItem(id, itemID); err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "item dihapus", fiber.Map{"invoice_item_id": itemID})
}

// =======================================================
// PATCH STATUS — escape hatch administratif.
// Tidak divalidasi terhadap total pembayaran, dan VOID tidak
// memblokir pembayaran berikutnya (perilaku lama dipertahankan).
// PATCH /staff/invoices/:id
// =======================================================

func (h *StaffInvoiceController) PatchStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.PatchInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.Items.SetStatus(id, in.Status); err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "status diubah", fiber.Map{"invoice_id": id, "status": in.Status})
}

// =======================================================
// FEE STATUS (staff view)
// GET /staff/fee-status?student_user_id=...
// =======================================================

func (h *StaffInvoiceController) FeeStatus(c *fiber.Ctx) error {
	sid, err := uuid.Parse(c.Query("student_user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_user_id wajib UUID")
	}

	fs, err := h.Pay.FeeStatusByStudent(sid)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonOK(c, "", dto.FeeStatusResponse{
		TotalBilled: fs.TotalBilled,
		TotalPaid:   fs.TotalPaid,
		DueCents:    fs.DueCents,
	})
}
