package dto

// SectionCreateInput là input khi tạo section singleton qua admin CRUD
type SectionCreateInput struct {
	Name string                 `json:"name" validate:"required,no_xss"`
	Data map[string]interface{} `json:"data"`
}

// SectionUpdateInput là input khi cập nhật section. Data nil nghĩa là không gửi.
type SectionUpdateInput struct {
	Data *map[string]interface{} `json:"data"`
}

// LocationCreateInput là input khi tạo trang địa điểm
type LocationCreateInput struct {
	Slug string                 `json:"slug" validate:"required,slug"`
	Data map[string]interface{} `json:"data"`
}

// LocationUpdateInput là input khi cập nhật trang địa điểm
type LocationUpdateInput struct {
	Data *map[string]interface{} `json:"data"`
}

// ServiceCreateInput là input khi tạo trang dịch vụ
type ServiceCreateInput struct {
	Slug string                 `json:"slug" validate:"required,slug"`
	Data map[string]interface{} `json:"data"`
}

// ServiceUpdateInput là input khi cập nhật trang dịch vụ
type ServiceUpdateInput struct {
	Data *map[string]interface{} `json:"data"`
}
