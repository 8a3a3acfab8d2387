// Package dto định nghĩa các cấu trúc input cho API CMS.
package dto

// FaqQuestionCreateInput là input khi tạo mới câu hỏi FAQ
type FaqQuestionCreateInput struct {
	Question string   `json:"question" validate:"required,no_xss"`
	Answer   string   `json:"answer" validate:"required,no_xss"`
	Category string   `json:"category" validate:"omitempty,no_xss"`
	Tags     []string `json:"tags" validate:"omitempty,dive,no_xss"`
	Priority int64    `json:"priority" validate:"omitempty,min=0"`
	IsActive bool     `json:"isActive"`
}

// FaqQuestionUpdateInput là input khi cập nhật câu hỏi FAQ.
// Các field dạng pointer: nil nghĩa là không gửi lên, không ghi đè giá trị cũ.
type FaqQuestionUpdateInput struct {
	Question *string   `json:"question" validate:"omitempty,no_xss"`
	Answer   *string   `json:"answer" validate:"omitempty,no_xss"`
	Category *string   `json:"category" validate:"omitempty,no_xss"`
	Tags     *[]string `json:"tags" validate:"omitempty"`
	Priority *int64    `json:"priority" validate:"omitempty,min=0"`
	IsActive *bool     `json:"isActive"`
}
