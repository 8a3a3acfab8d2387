// Package handler chứa các HTTP handler cho API nội dung CMS công khai.
// Surface này dùng envelope {success, data?, error?}: section không có dữ liệu
// trả về success=false chứ không phải HTTP 404, frontend luôn render được
// với defaults.
package handler

import (
	"github.com/gofiber/fiber/v3"

	basehdl "sparkle_cms/internal/api/base/handler"
	cmssvc "sparkle_cms/internal/api/cms/service"
	"sparkle_cms/internal/common"
	"sparkle_cms/internal/logger"
)

// ContentHandler xử lý đọc/ghi nội dung section qua resolver.
type ContentHandler struct {
	resolver *cmssvc.Resolver
}

// NewContentHandler tạo ContentHandler với resolver đã chọn backend.
func NewContentHandler(resolver *cmssvc.Resolver) *ContentHandler {
	return &ContentHandler{resolver: resolver}
}

// respondSuccess trả về envelope thành công.
func respondSuccess(c fiber.Ctx, data interface{}) error {
	return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondFailure trả về envelope thất bại với message lỗi.
func respondFailure(c fiber.Ctx, statusCode int, message string) error {
	return basehdl.JSONResponse(c, statusCode, fiber.Map{
		"success": false,
		"error":   message,
	})
}

// reasonMessage dịch reason của Resolution sang message cho client.
func reasonMessage(reason string) string {
	switch reason {
	case cmssvc.ReasonNotFound:
		return "Không tìm thấy nội dung"
	case cmssvc.ReasonTransport:
		return "Không kết nối được nguồn nội dung"
	default:
		return "Nguồn nội dung trả về lỗi"
	}
}

// GetSection trả về nội dung một section singleton theo tên.
// GET /api/cms/:section
func (h *ContentHandler) GetSection(c fiber.Ctx) error {
	return h.getContent(c, cmssvc.SectionRef{Kind: cmssvc.KindSection, Key: c.Params("section")})
}

// GetLocation trả về nội dung trang địa điểm theo slug.
// GET /api/cms/location/:slug
func (h *ContentHandler) GetLocation(c fiber.Ctx) error {
	return h.getContent(c, cmssvc.SectionRef{Kind: cmssvc.KindLocation, Key: c.Params("slug")})
}

// GetService trả về nội dung trang dịch vụ theo slug.
// GET /api/cms/service/:slug
func (h *ContentHandler) GetService(c fiber.Ctx) error {
	return h.getContent(c, cmssvc.SectionRef{Kind: cmssvc.KindService, Key: c.Params("slug")})
}

// getContent resolve ref và đóng gói Resolution vào envelope.
func (h *ContentHandler) getContent(c fiber.Ctx, ref cmssvc.SectionRef) error {
	resolution := h.resolver.Get(c.Context(), ref)
	if !resolution.OK {
		return respondFailure(c, common.StatusOK, reasonMessage(resolution.Reason))
	}
	return respondSuccess(c, resolution.Data)
}

// SaveSection ghi đè toàn bộ nội dung một section singleton.
// POST /api/cms/:section, body là cả object nội dung.
func (h *ContentHandler) SaveSection(c fiber.Ctx) error {
	name := c.Params("section")
	return h.saveContent(c, cmssvc.SectionRef{Kind: cmssvc.KindSection, Key: name}, name)
}

// SaveLocation ghi đè toàn bộ nội dung trang địa điểm theo slug.
// POST /api/cms/location/:slug
func (h *ContentHandler) SaveLocation(c fiber.Ctx) error {
	slug := c.Params("slug")
	return h.saveContent(c, cmssvc.SectionRef{Kind: cmssvc.KindLocation, Key: slug}, "location:"+slug)
}

// SaveService ghi đè toàn bộ nội dung trang dịch vụ theo slug.
// POST /api/cms/service/:slug
func (h *ContentHandler) SaveService(c fiber.Ctx) error {
	slug := c.Params("slug")
	return h.saveContent(c, cmssvc.SectionRef{Kind: cmssvc.KindService, Key: slug}, "service:"+slug)
}

// saveContent ghi đè dữ liệu của ref qua resolver, chung cho mọi loại section.
func (h *ContentHandler) saveContent(c fiber.Ctx, ref cmssvc.SectionRef, auditName string) error {
	var data map[string]interface{}
	if err := c.Bind().Body(&data); err != nil {
		return respondFailure(c, common.StatusBadRequest, "Body không phải JSON object hợp lệ")
	}

	if err := h.resolver.Save(c.Context(), ref, data); err != nil {
		return h.respondSaveError(c, err)
	}

	logger.LogContentSave(auditName, c, map[string]interface{}{
		"fieldCount": len(data),
	})

	// Trả về bản đã lưu sau khi merge defaults để client thấy shape chuẩn
	resolution := h.resolver.Get(c.Context(), ref)
	if !resolution.OK {
		return respondSuccess(c, data)
	}
	return respondSuccess(c, resolution.Data)
}

// respondSaveError dịch lỗi lưu về envelope với status code tương ứng.
func (h *ContentHandler) respondSaveError(c fiber.Ctx, err error) error {
	statusCode := common.StatusInternalServerError
	if converted := common.ConvertMongoError(err); converted != nil {
		if customErr, ok := converted.(*common.Error); ok {
			statusCode = customErr.StatusCode
		}
	}
	return respondFailure(c, statusCode, err.Error())
}
