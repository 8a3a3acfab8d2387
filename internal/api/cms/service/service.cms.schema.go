// Package cmssvc chứa logic nghiệp vụ của content resolver và FAQ.
package cmssvc

import (
	"strings"
)

// FieldMap ánh xạ một field phẳng bên headless CMS sang đường dẫn lồng nhau
// trong shape chuẩn hóa, kèm giá trị mặc định khi nguồn không có dữ liệu.
// Bảng ánh xạ phải được cập nhật đồng bộ khi schema của một trong hai backend đổi.
type FieldMap struct {
	Source  string      // tên field phẳng bên headless (vd: heroHeading)
	Path    string      // đường dẫn trong shape chuẩn hóa (vd: heroSection.heading)
	Default interface{} // giá trị mặc định, luôn là literal
	IsImage bool        // field chứa URL/media reference, cần chuẩn hóa URL
}

// SectionSchema mô tả một content section: tên, content type bên headless,
// và bảng ánh xạ field. Mọi field một trang đọc đều phải có mặt ở đây
// để đảm bảo không có giá trị undefined lọt xuống render layer.
type SectionSchema struct {
	Name        string
	ContentType string // API id bên headless CMS
	Fields      []FieldMap
}

// defaultHoursRows trả về 7 dòng giờ mở cửa Monday→Sunday với giờ trống.
// Thứ tự các dòng có ý nghĩa và phải round-trip nguyên vẹn qua edit-save.
func defaultHoursRows() []interface{} {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	rows := make([]interface{}, 0, len(days))
	for _, day := range days {
		rows = append(rows, map[string]interface{}{
			"day":   day,
			"hours": "",
		})
	}
	return rows
}

// sectionSchemas là inventory các section singleton.
// Key là name của section (cũng là path segment trong /api/cms/{section}).
var sectionSchemas = map[string]SectionSchema{
	"home": {
		Name:        "home",
		ContentType: "home-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "heroTagline", Path: "heroSection.tagline", Default: ""},
			{Source: "heroImage", Path: "heroSection.image", Default: "", IsImage: true},
			{Source: "heroCtaLabel", Path: "heroSection.ctaLabel", Default: ""},
			{Source: "heroCtaLink", Path: "heroSection.ctaLink", Default: ""},
			{Source: "introTitle", Path: "introSection.title", Default: ""},
			{Source: "introText", Path: "introSection.text", Default: ""},
			{Source: "features", Path: "featuresSection.items", Default: []interface{}{}},
			{Source: "highlightedServices", Path: "servicesSection.items", Default: []interface{}{}},
		},
	},
	"about": {
		Name:        "about",
		ContentType: "about-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "heroTagline", Path: "heroSection.tagline", Default: ""},
			{Source: "heroImage", Path: "heroSection.image", Default: "", IsImage: true},
			{Source: "storyTitle", Path: "storySection.title", Default: ""},
			{Source: "storyText", Path: "storySection.text", Default: ""},
			{Source: "storyImage", Path: "storySection.image", Default: "", IsImage: true},
			{Source: "values", Path: "valuesSection.items", Default: []interface{}{}},
			{Source: "teamMembers", Path: "teamSection.members", Default: []interface{}{}},
		},
	},
	"contact": {
		Name:        "contact",
		ContentType: "contact-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "phone", Path: "contactSection.phone", Default: ""},
			{Source: "email", Path: "contactSection.email", Default: ""},
			{Source: "address", Path: "contactSection.address", Default: ""},
			{Source: "hours", Path: "contactSection.hours", Default: defaultHoursRows()},
			{Source: "mapEmbedUrl", Path: "contactSection.mapEmbedUrl", Default: ""},
		},
	},
	"services-page": {
		Name:        "services-page",
		ContentType: "services-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "heroTagline", Path: "heroSection.tagline", Default: ""},
			{Source: "introText", Path: "introSection.text", Default: ""},
			{Source: "serviceCards", Path: "servicesSection.items", Default: []interface{}{}},
		},
	},
	"booking": {
		Name:        "booking",
		ContentType: "booking-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "instructions", Path: "bookingSection.instructions", Default: ""},
			{Source: "confirmationText", Path: "bookingSection.confirmationText", Default: ""},
			{Source: "phone", Path: "bookingSection.phone", Default: ""},
		},
	},
	"gallery": {
		Name:        "gallery",
		ContentType: "gallery-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "beforeAfterPairs", Path: "gallerySection.beforeAfterPairs", Default: []interface{}{}},
			{Source: "images", Path: "gallerySection.images", Default: []interface{}{}},
		},
	},
	"testimonials": {
		Name:        "testimonials",
		ContentType: "testimonials-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "items", Path: "testimonialsSection.items", Default: []interface{}{}},
		},
	},
	"faq-page": {
		Name:        "faq-page",
		ContentType: "faq-page",
		Fields: []FieldMap{
			{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
			{Source: "introText", Path: "introSection.text", Default: ""},
			{Source: "contactPrompt", Path: "contactSection.prompt", Default: ""},
		},
	},
}

// locationSchema áp dụng cho mọi trang địa điểm (slug-addressed).
var locationSchema = SectionSchema{
	Name:        "location",
	ContentType: "locations",
	Fields: []FieldMap{
		{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
		{Source: "heroTagline", Path: "heroSection.tagline", Default: ""},
		{Source: "heroImage", Path: "heroSection.image", Default: "", IsImage: true},
		{Source: "introText", Path: "introSection.text", Default: ""},
		{Source: "areaList", Path: "coverageSection.areas", Default: []interface{}{}},
		{Source: "phone", Path: "contactSection.phone", Default: ""},
		{Source: "email", Path: "contactSection.email", Default: ""},
		{Source: "address", Path: "contactSection.address", Default: ""},
		{Source: "hours", Path: "contactSection.hours", Default: defaultHoursRows()},
	},
}

// serviceSchema áp dụng cho mọi trang dịch vụ (slug-addressed).
var serviceSchema = SectionSchema{
	Name:        "service",
	ContentType: "services",
	Fields: []FieldMap{
		{Source: "heroHeading", Path: "heroSection.heading", Default: ""},
		{Source: "heroTagline", Path: "heroSection.tagline", Default: ""},
		{Source: "heroImage", Path: "heroSection.image", Default: "", IsImage: true},
		{Source: "description", Path: "descriptionSection.text", Default: ""},
		{Source: "features", Path: "featuresSection.items", Default: []interface{}{}},
		{Source: "priceFrom", Path: "pricingSection.priceFrom", Default: float64(0)},
		{Source: "priceNote", Path: "pricingSection.note", Default: ""},
		{Source: "faqItems", Path: "faqSection.items", Default: []interface{}{}},
	},
}

// SchemaForSection trả về schema của section singleton theo name.
func SchemaForSection(name string) (SectionSchema, bool) {
	schema, ok := sectionSchemas[name]
	return schema, ok
}

// SchemaForKind trả về schema theo loại ref (section/location/service).
func SchemaForKind(ref SectionRef) (SectionSchema, bool) {
	switch ref.Kind {
	case KindLocation:
		return locationSchema, true
	case KindService:
		return serviceSchema, true
	case KindSection:
		return SchemaForSection(ref.Key)
	}
	return SectionSchema{}, false
}

// SectionNames trả về danh sách name của các section singleton (phục vụ init data).
func SectionNames() []string {
	names := make([]string, 0, len(sectionSchemas))
	for name := range sectionSchemas {
		names = append(names, name)
	}
	return names
}

// BuildDefault dựng shape chuẩn hóa với mọi field bằng giá trị mặc định.
func BuildDefault(schema SectionSchema) map[string]interface{} {
	out := make(map[string]interface{})
	for _, field := range schema.Fields {
		setNestedValue(out, field.Path, cloneDefault(field.Default))
	}
	return out
}

// MapFlatToNested dịch response phẳng của headless CMS sang shape chuẩn hóa.
// Field vắng mặt nhận giá trị mặc định; field media được chuẩn hóa URL.
func MapFlatToNested(schema SectionSchema, flat map[string]interface{}, mediaBase string) map[string]interface{} {
	out := BuildDefault(schema)
	for _, field := range schema.Fields {
		raw, ok := flat[field.Source]
		if !ok || raw == nil {
			continue
		}
		if field.IsImage {
			setNestedValue(out, field.Path, NormalizeImageURL(raw, mediaBase))
			continue
		}
		setNestedValue(out, field.Path, raw)
	}
	return out
}

// MapNestedToFlat dịch ngược shape chuẩn hóa sang field phẳng để ghi về headless CMS.
func MapNestedToFlat(schema SectionSchema, data map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})
	for _, field := range schema.Fields {
		if value, ok := getNestedValue(data, field.Path); ok {
			flat[field.Source] = value
		}
	}
	return flat
}

// MergeWithDefaults phủ dữ liệu đã lưu lên trên shape mặc định.
// Field đã lưu giữ nguyên, field thiếu nhận giá trị mặc định, đảm bảo
// caller không bao giờ thấy field vắng mặt.
func MergeWithDefaults(schema SectionSchema, data map[string]interface{}) map[string]interface{} {
	return deepMerge(BuildDefault(schema), data)
}

// NormalizeImageURL chuẩn hóa giá trị media về URL tuyệt đối:
// chuỗi tuyệt đối đi qua nguyên vẹn, path gốc-tương-đối được prefix bằng media origin,
// media reference dạng object (kể cả envelope data.attributes) được bóc ra trước.
func NormalizeImageURL(value interface{}, mediaBase string) string {
	url := extractMediaURL(value)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return strings.TrimSuffix(mediaBase, "/") + url
	}
	return url
}

// extractMediaURL bóc URL từ giá trị media: chuỗi trực tiếp,
// object {url}, hoặc envelope {data: {attributes: {url}}}.
func extractMediaURL(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		if data, ok := v["data"].(map[string]interface{}); ok {
			if attrs, ok := data["attributes"].(map[string]interface{}); ok {
				if url, ok := attrs["url"].(string); ok {
					return url
				}
			}
		}
		if url, ok := v["url"].(string); ok {
			return url
		}
	}
	return ""
}

// setNestedValue gán giá trị tại đường dẫn dotted, tự tạo các object trung gian.
// Chỉ dùng nội bộ khi dựng shape từ bảng ánh xạ; input người dùng đi qua
// package nested với parser chặt chẽ hơn.
func setNestedValue(m map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			current[part] = child
		}
		current = child
	}
	current[parts[len(parts)-1]] = value
}

// getNestedValue đọc giá trị tại đường dẫn dotted, trả về ok=false nếu thiếu.
func getNestedValue(m map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = m
	for _, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// deepMerge phủ overlay lên base: object merge đệ quy, giá trị khác ghi đè.
func deepMerge(base map[string]interface{}, overlay map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		baseChild, baseOk := out[k].(map[string]interface{})
		overlayChild, overlayOk := v.(map[string]interface{})
		if baseOk && overlayOk {
			out[k] = deepMerge(baseChild, overlayChild)
			continue
		}
		out[k] = v
	}
	return out
}

// cloneDefault copy giá trị mặc định để các document không chia sẻ slice/map.
func cloneDefault(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		cloned := make([]interface{}, len(v))
		for i, item := range v {
			cloned[i] = cloneDefault(item)
		}
		return cloned
	case map[string]interface{}:
		cloned := make(map[string]interface{}, len(v))
		for k, item := range v {
			cloned[k] = cloneDefault(item)
		}
		return cloned
	default:
		return v
	}
}
