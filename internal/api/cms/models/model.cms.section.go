// Package models định nghĩa các model nội dung CMS lưu trong MongoDB.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section là một content section dạng singleton (home, about, contact...).
// Mỗi section là một document duy nhất trong cms_sections, định danh bằng name.
// Data giữ shape lồng nhau đã chuẩn hóa mà các trang marketing render trực tiếp.
type Section struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Name      string                 `json:"name" bson:"name" validate:"required"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`
}

// Location là trang địa điểm định danh bằng slug (vd: bergen, oslo).
type Location struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Slug      string                 `json:"slug" bson:"slug" validate:"required,slug"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`
}

// Service là trang dịch vụ định danh bằng slug (vd: deep-cleaning).
type Service struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Slug      string                 `json:"slug" bson:"slug" validate:"required,slug"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	CreatedAt int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64                  `json:"updatedAt" bson:"updatedAt"`
}
