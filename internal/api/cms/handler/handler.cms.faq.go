package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "sparkle_cms/internal/api/base/handler"
	basesvc "sparkle_cms/internal/api/base/service"
	"sparkle_cms/internal/api/cms/dto"
	cmsmodels "sparkle_cms/internal/api/cms/models"
	cmssvc "sparkle_cms/internal/api/cms/service"
	"sparkle_cms/internal/common"
	"sparkle_cms/internal/logger"
	"sparkle_cms/internal/utility"
)

// FaqHandler xử lý API quản lý câu hỏi FAQ.
// Embed BaseHandler để dùng lại parse/validate/transform, nhưng surface công
// khai trả envelope {success, data?, error?} thay vì envelope admin.
type FaqHandler struct {
	basehdl.BaseHandler[cmsmodels.FaqQuestion, dto.FaqQuestionCreateInput, dto.FaqQuestionUpdateInput]
	faqService *cmssvc.FaqQuestionService
}

// NewFaqHandler tạo FaqHandler.
func NewFaqHandler() (*FaqHandler, error) {
	svc, err := cmssvc.NewFaqQuestionService()
	if err != nil {
		return nil, err
	}
	h := &FaqHandler{faqService: svc}
	h.BaseHandler = *basehdl.NewBaseHandler[cmsmodels.FaqQuestion, dto.FaqQuestionCreateInput, dto.FaqQuestionUpdateInput](svc)
	return h, nil
}

// List trả về danh sách câu hỏi theo trang.
// GET /api/cms/faq-questions?page=&limit=&search=&category=&active=
func (h *FaqHandler) List(c fiber.Ctx) error {
	page, limit := h.ParsePagination(c)
	search := c.Query("search")
	category := c.Query("category")
	activeOnly := c.Query("active") == "true"

	result, err := h.faqService.FindPaginated(c.Context(), page, limit, search, category, activeOnly)
	if err != nil {
		return respondFailure(c, common.StatusInternalServerError, err.Error())
	}

	items := result.Items
	if items == nil {
		items = []cmsmodels.FaqQuestion{}
	}
	return respondSuccess(c, fiber.Map{
		"items":   items,
		"page":    result.Page,
		"total":   result.Total,
		"hasMore": result.HasMore(),
	})
}

// Create tạo câu hỏi mới, hoặc seed bộ mặc định khi body là {"initialize": true}.
// POST /api/cms/faq-questions
func (h *FaqHandler) Create(c fiber.Ctx) error {
	// Nhận diện request seed trước khi decode input tạo mới
	var seedFlag struct {
		Initialize bool `json:"initialize"`
	}
	if err := json.Unmarshal(c.Body(), &seedFlag); err == nil && seedFlag.Initialize {
		seeded, err := h.faqService.Initialize(c.Context())
		if err != nil {
			return respondFailure(c, common.StatusInternalServerError, err.Error())
		}
		return respondSuccess(c, fiber.Map{"seeded": seeded})
	}

	var input dto.FaqQuestionCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}
	if err := h.ValidateInput(&input); err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}

	model, err := h.TransformCreateInputToModel(&input)
	if err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}

	created, err := h.faqService.InsertOne(c.Context(), *model)
	if err != nil {
		return respondFailure(c, common.StatusInternalServerError, err.Error())
	}

	logger.LogCRUD("create", "faq_question", utility.ObjectID2String(created.ID), c, nil)
	return respondSuccess(c, created)
}

// Update cập nhật một câu hỏi theo id. Chỉ các field gửi lên bị ghi đè.
// PUT /api/cms/faq-questions/:id
func (h *FaqHandler) Update(c fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}

	var input dto.FaqQuestionUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}
	if err := h.ValidateInput(&input); err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}

	set := map[string]interface{}{}
	if input.Question != nil {
		set["question"] = *input.Question
	}
	if input.Answer != nil {
		set["answer"] = *input.Answer
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Tags != nil {
		set["tags"] = *input.Tags
	}
	if input.Priority != nil {
		set["priority"] = *input.Priority
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	if len(set) == 0 {
		return respondFailure(c, common.StatusBadRequest, "Không có field nào để cập nhật")
	}

	updated, err := h.faqService.UpdateById(c.Context(), id, &basesvc.UpdateData{Set: set})
	if err != nil {
		return respondFailure(c, statusOf(err), err.Error())
	}

	logger.LogCRUD("update", "faq_question", utility.ObjectID2String(id), c, map[string]interface{}{
		"fields": len(set),
	})
	return respondSuccess(c, updated)
}

// Delete xóa một câu hỏi theo id.
// DELETE /api/cms/faq-questions/:id
func (h *FaqHandler) Delete(c fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return respondFailure(c, common.StatusBadRequest, err.Error())
	}

	if err := h.faqService.DeleteById(c.Context(), id); err != nil {
		return respondFailure(c, statusOf(err), err.Error())
	}

	logger.LogCRUD("delete", "faq_question", utility.ObjectID2String(id), c, nil)
	return respondSuccess(c, fiber.Map{"deleted": true})
}

// Cleanup xóa các câu hỏi trùng lặp, trả về số đã xóa và số còn lại.
// POST /api/cms/faq-questions/cleanup
func (h *FaqHandler) Cleanup(c fiber.Ctx) error {
	result, err := h.faqService.Cleanup(c.Context())
	if err != nil {
		return respondFailure(c, common.StatusInternalServerError, err.Error())
	}
	logger.LogAction("faq_cleanup", c, map[string]interface{}{
		"removed":   result.Removed,
		"remaining": result.Remaining,
	})
	return respondSuccess(c, result)
}

// parseID đọc và kiểm tra ObjectID từ URL param.
func (h *FaqHandler) parseID(c fiber.Ctx) (primitive.ObjectID, error) {
	raw := h.GetIDFromContext(c)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không đúng định dạng ObjectID",
			common.StatusBadRequest,
			nil,
		)
	}
	return id, nil
}

// statusOf suy ra HTTP status từ lỗi service (mặc định 500).
func statusOf(err error) int {
	if converted := common.ConvertMongoError(err); converted != nil {
		if customErr, ok := converted.(*common.Error); ok {
			return customErr.StatusCode
		}
	}
	return common.StatusInternalServerError
}
