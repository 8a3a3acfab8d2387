// Package database - Index cho các collection CMS.
package database

import (
	"context"
	"strings"

	"sparkle_cms/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCmsIndexes tạo index cho các collection CMS. Gọi một lần lúc khởi động,
// index đã tồn tại thì bỏ qua.
func CreateCmsIndexes(ctx context.Context, db *mongo.Database) error {
	// cms_sections: name unique, mỗi section singleton đúng một document
	sections := db.Collection(global.MongoDB_ColNames.CmsSections)
	if _, err := sections.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("cms_section_name").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cms_locations: slug unique, lookup trang địa điểm
	locations := db.Collection(global.MongoDB_ColNames.CmsLocations)
	if _, err := locations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("cms_location_slug").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cms_services: slug unique, lookup trang dịch vụ
	services := db.Collection(global.MongoDB_ColNames.CmsServices)
	if _, err := services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("cms_service_slug").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cms_faq_questions: (category, isActive), filter danh sách admin
	faq := db.Collection(global.MongoDB_ColNames.CmsFaqQuestions)
	if _, err := faq.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "isActive", Value: 1},
		},
		Options: options.Index().SetName("cms_faq_category_active"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cms_faq_questions: createdAt, cleanup giữ bản ghi sớm nhất, sort ổn định
	if _, err := faq.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("cms_faq_created_at"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError kiểm tra lỗi index đã tồn tại (tên hoặc spec trùng).
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict") ||
		strings.Contains(msg, "already exists")
}
