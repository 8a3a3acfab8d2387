package global

import (
	"sparkle_cms/config"
	"sparkle_cms/internal/registry"

	"go.mongodb.org/mongo-driver/mongo"
	"github.com/go-playground/validator/v10"
)

// MongoDB_CMS_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CMS_CollectionName struct {
	CmsSections     string // Tên collection cho các content section đơn lẻ (home, about, contact, ...)
	CmsLocations    string // Tên collection cho trang địa điểm (theo slug)
	CmsServices     string // Tên collection cho trang dịch vụ (theo slug)
	CmsFaqQuestions string // Tên collection cho câu hỏi FAQ
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CMS_CollectionName{
	CmsSections:     "cms_sections",
	CmsLocations:    "cms_locations",
	CmsServices:     "cms_services",
	CmsFaqQuestions: "cms_faq_questions",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
