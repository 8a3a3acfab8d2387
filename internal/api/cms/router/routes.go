// Package router đăng ký route cho domain CMS: surface công khai /api/cms
// cho frontend và surface admin /api/v1 cho tool quản trị.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "sparkle_cms/internal/api/base/handler"
	"sparkle_cms/internal/api/cms/dto"
	cmshdl "sparkle_cms/internal/api/cms/handler"
	cmsmodels "sparkle_cms/internal/api/cms/models"
	cmssvc "sparkle_cms/internal/api/cms/service"
	coreroute "sparkle_cms/internal/api/router"
)

// Register tạo RegisterFunc cho domain CMS với resolver và backend đã khởi tạo.
// Backend Mongo luôn được truyền riêng vì admin CRUD thao tác trực tiếp
// collection, kể cả khi surface công khai resolve qua headless CMS.
func Register(resolver *cmssvc.Resolver, backend *cmssvc.MongoBackend) coreroute.RegisterFunc {
	return func(v1 fiber.Router, r *coreroute.Router) error {
		contentHandler := cmshdl.NewContentHandler(resolver)
		faqHandler, err := cmshdl.NewFaqHandler()
		if err != nil {
			return err
		}

		// Surface công khai. Route cụ thể phải đăng ký trước /:section
		// vì Fiber match theo thứ tự đăng ký.
		cms := r.App().Group("/api/cms")
		cms.Get("/faq-questions", faqHandler.List)
		cms.Post("/faq-questions", faqHandler.Create)
		cms.Post("/faq-questions/cleanup", faqHandler.Cleanup)
		cms.Put("/faq-questions/:id", faqHandler.Update)
		cms.Delete("/faq-questions/:id", faqHandler.Delete)
		cms.Get("/location/:slug", contentHandler.GetLocation)
		cms.Post("/location/:slug", contentHandler.SaveLocation)
		cms.Get("/service/:slug", contentHandler.GetService)
		cms.Post("/service/:slug", contentHandler.SaveService)
		cms.Get("/:section", contentHandler.GetSection)
		cms.Post("/:section", contentHandler.SaveSection)

		// Surface admin CRUD trên /api/v1
		sectionHandler := basehdl.NewBaseHandler[cmsmodels.Section, dto.SectionCreateInput, dto.SectionUpdateInput](backend.Sections())
		locationHandler := basehdl.NewBaseHandler[cmsmodels.Location, dto.LocationCreateInput, dto.LocationUpdateInput](backend.Locations())
		serviceHandler := basehdl.NewBaseHandler[cmsmodels.Service, dto.ServiceCreateInput, dto.ServiceUpdateInput](backend.Services())

		r.RegisterCRUDRoutes(v1, "/cms/sections", sectionHandler, coreroute.SingletonConfig)
		r.RegisterCRUDRoutes(v1, "/cms/locations", locationHandler, coreroute.ReadWriteConfig)
		r.RegisterCRUDRoutes(v1, "/cms/services", serviceHandler, coreroute.ReadWriteConfig)
		r.RegisterCRUDRoutes(v1, "/cms/faq-questions", faqHandler, coreroute.ReadWriteConfig)

		return nil
	}
}
