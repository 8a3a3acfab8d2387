package cmssvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "sparkle_cms/internal/api/base/service"
	cmsmodels "sparkle_cms/internal/api/cms/models"
	"sparkle_cms/internal/common"
	"sparkle_cms/internal/global"
)

// MongoBackend là content backend lưu trong MongoDB: một document mỗi section,
// keyed theo name (singleton) hoặc slug (location/service).
type MongoBackend struct {
	sections  *basesvc.BaseServiceMongoImpl[cmsmodels.Section]
	locations *basesvc.BaseServiceMongoImpl[cmsmodels.Location]
	services  *basesvc.BaseServiceMongoImpl[cmsmodels.Service]
}

// NewMongoBackend tạo backend MongoDB từ các collection đã đăng ký trong registry.
func NewMongoBackend() (*MongoBackend, error) {
	sectionCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CmsSections)
	if !exist {
		return nil, fmt.Errorf("failed to get cms_sections collection: %v", common.ErrNotFound)
	}
	locationCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CmsLocations)
	if !exist {
		return nil, fmt.Errorf("failed to get cms_locations collection: %v", common.ErrNotFound)
	}
	serviceCol, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CmsServices)
	if !exist {
		return nil, fmt.Errorf("failed to get cms_services collection: %v", common.ErrNotFound)
	}

	return &MongoBackend{
		sections:  basesvc.NewBaseServiceMongo[cmsmodels.Section](sectionCol),
		locations: basesvc.NewBaseServiceMongo[cmsmodels.Location](locationCol),
		services:  basesvc.NewBaseServiceMongo[cmsmodels.Service](serviceCol),
	}, nil
}

// Fetch đọc dữ liệu section từ MongoDB.
// Không có bản ghi thì tự provision bản ghi mặc định rồi trả về, lần đọc
// đầu tiên của một section mới luôn thành công với shape mặc định.
func (b *MongoBackend) Fetch(ctx context.Context, ref SectionRef) (map[string]interface{}, error) {
	data, err := b.fetchData(ctx, ref)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Auto-provision: tạo bản ghi mặc định khi đọc lần đầu
	schema, ok := SchemaForKind(ref)
	if !ok {
		return nil, common.ErrSectionUnknown
	}
	defaults := BuildDefault(schema)
	if err := b.Save(ctx, ref, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// fetchData tìm document theo ref, trả về phần Data.
func (b *MongoBackend) fetchData(ctx context.Context, ref SectionRef) (map[string]interface{}, error) {
	switch ref.Kind {
	case KindSection:
		doc, err := b.sections.FindOne(ctx, bson.M{"name": ref.Key}, nil)
		if err != nil {
			return nil, err
		}
		return doc.Data, nil
	case KindLocation:
		doc, err := b.locations.FindOne(ctx, bson.M{"slug": ref.Key}, nil)
		if err != nil {
			return nil, err
		}
		return doc.Data, nil
	case KindService:
		doc, err := b.services.FindOne(ctx, bson.M{"slug": ref.Key}, nil)
		if err != nil {
			return nil, err
		}
		return doc.Data, nil
	}
	return nil, common.ErrSectionUnknown
}

// Save upsert document của section với toàn bộ data mới (full-object overwrite).
func (b *MongoBackend) Save(ctx context.Context, ref SectionRef, data map[string]interface{}) error {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"data": data},
	}
	var err error
	switch ref.Kind {
	case KindSection:
		update.SetOnInsert = map[string]interface{}{"name": ref.Key}
		_, err = b.sections.Upsert(ctx, bson.M{"name": ref.Key}, update)
	case KindLocation:
		update.SetOnInsert = map[string]interface{}{"slug": ref.Key}
		_, err = b.locations.Upsert(ctx, bson.M{"slug": ref.Key}, update)
	case KindService:
		update.SetOnInsert = map[string]interface{}{"slug": ref.Key}
		_, err = b.services.Upsert(ctx, bson.M{"slug": ref.Key}, update)
	default:
		return common.ErrSectionUnknown
	}
	return err
}

// Sections trả về base service của collection sections (dùng cho admin CRUD).
func (b *MongoBackend) Sections() *basesvc.BaseServiceMongoImpl[cmsmodels.Section] {
	return b.sections
}

// Locations trả về base service của collection locations (dùng cho admin CRUD).
func (b *MongoBackend) Locations() *basesvc.BaseServiceMongoImpl[cmsmodels.Location] {
	return b.locations
}

// Services trả về base service của collection services (dùng cho admin CRUD).
func (b *MongoBackend) Services() *basesvc.BaseServiceMongoImpl[cmsmodels.Service] {
	return b.services
}
