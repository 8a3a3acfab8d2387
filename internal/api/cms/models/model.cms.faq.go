package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FaqQuestion là một câu hỏi FAQ. Khác các section singleton, FAQ là collection
// thật sự với CRUD theo id. Trùng lặp question có thể tồn tại tạm thời,
// thao tác cleanup sẽ dọn sau (không phải ràng buộc lúc ghi).
type FaqQuestion struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Question  string             `json:"question" bson:"question" validate:"required"`
	Answer    string             `json:"answer" bson:"answer" validate:"required"`
	Category  string             `json:"category" bson:"category,omitempty" default:"general"`
	Tags      []string           `json:"tags" bson:"tags,omitempty"`
	Priority  int64              `json:"priority" bson:"priority,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive,omitempty" default:"true"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}
