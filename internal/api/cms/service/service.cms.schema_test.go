package cmssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultCoversEveryField(t *testing.T) {
	schemas := make([]SectionSchema, 0, len(sectionSchemas)+2)
	for name := range sectionSchemas {
		schema, ok := SchemaForSection(name)
		require.True(t, ok)
		schemas = append(schemas, schema)
	}
	schemas = append(schemas, locationSchema, serviceSchema)

	for _, schema := range schemas {
		defaults := BuildDefault(schema)
		for _, field := range schema.Fields {
			value, found := getNestedValue(defaults, field.Path)
			assert.True(t, found, "schema %s thiếu field %s", schema.Name, field.Path)
			assert.NotNil(t, value, "schema %s field %s phải có giá trị mặc định", schema.Name, field.Path)
		}
	}
}

func TestBuildDefaultFreshLocation(t *testing.T) {
	defaults := BuildDefault(locationSchema)

	raw, found := getNestedValue(defaults, "contactSection.hours")
	require.True(t, found)

	rows, ok := raw.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 7)

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, day := range days {
		row, ok := rows[i].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, day, row["day"])
		assert.Equal(t, "", row["hours"])
	}

	areas, found := getNestedValue(defaults, "coverageSection.areas")
	require.True(t, found)
	assert.Equal(t, []interface{}{}, areas)
}

func TestBuildDefaultFreshService(t *testing.T) {
	defaults := BuildDefault(serviceSchema)

	priceFrom, found := getNestedValue(defaults, "pricingSection.priceFrom")
	require.True(t, found)
	assert.Equal(t, float64(0), priceFrom)

	items, found := getNestedValue(defaults, "faqSection.items")
	require.True(t, found)
	assert.Equal(t, []interface{}{}, items)
}

func TestBuildDefaultContactHours(t *testing.T) {
	schema, ok := SchemaForSection("contact")
	require.True(t, ok)

	defaults := BuildDefault(schema)
	raw, found := getNestedValue(defaults, "contactSection.hours")
	require.True(t, found)

	rows, ok := raw.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 7)

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, day := range days {
		row, ok := rows[i].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, day, row["day"])
		assert.Equal(t, "", row["hours"])
	}
}

func TestBuildDefaultNotShared(t *testing.T) {
	schema, ok := SchemaForSection("contact")
	require.True(t, ok)

	first := BuildDefault(schema)
	second := BuildDefault(schema)

	rows, _ := getNestedValue(first, "contactSection.hours")
	rows.([]interface{})[0].(map[string]interface{})["hours"] = "8:00 - 17:00"

	otherRows, _ := getNestedValue(second, "contactSection.hours")
	assert.Equal(t, "", otherRows.([]interface{})[0].(map[string]interface{})["hours"],
		"hai document không được chia sẻ slice mặc định")
}

func TestMapFlatToNested(t *testing.T) {
	schema, ok := SchemaForSection("home")
	require.True(t, ok)

	flat := map[string]interface{}{
		"heroHeading": "Sparkling Clean Homes",
		"heroImage":   "/uploads/hero.jpg",
	}
	out := MapFlatToNested(schema, flat, "https://media.example.com")

	heading, _ := getNestedValue(out, "heroSection.heading")
	assert.Equal(t, "Sparkling Clean Homes", heading)

	image, _ := getNestedValue(out, "heroSection.image")
	assert.Equal(t, "https://media.example.com/uploads/hero.jpg", image)

	// Field vắng mặt nhận default, không bị undefined
	tagline, found := getNestedValue(out, "heroSection.tagline")
	require.True(t, found)
	assert.Equal(t, "", tagline)

	items, found := getNestedValue(out, "featuresSection.items")
	require.True(t, found)
	assert.Equal(t, []interface{}{}, items)
}

func TestMapNestedToFlatRoundTrip(t *testing.T) {
	schema, ok := SchemaForSection("booking")
	require.True(t, ok)

	flat := map[string]interface{}{
		"heroHeading":      "Book a clean",
		"instructions":     "Pick a date",
		"confirmationText": "See you soon",
		"phone":            "0123 456 789",
	}
	nested := MapFlatToNested(schema, flat, "")
	back := MapNestedToFlat(schema, nested)
	assert.Equal(t, flat, back)
}

func TestMergeWithDefaults(t *testing.T) {
	schema, ok := SchemaForSection("home")
	require.True(t, ok)

	saved := map[string]interface{}{
		"heroSection": map[string]interface{}{
			"heading": "Đã lưu",
		},
	}
	merged := MergeWithDefaults(schema, saved)

	heading, _ := getNestedValue(merged, "heroSection.heading")
	assert.Equal(t, "Đã lưu", heading)

	// Các field anh em trong cùng object vẫn nhận default
	tagline, found := getNestedValue(merged, "heroSection.tagline")
	require.True(t, found)
	assert.Equal(t, "", tagline)

	text, found := getNestedValue(merged, "introSection.text")
	require.True(t, found)
	assert.Equal(t, "", text)
}

func TestNormalizeImageURL(t *testing.T) {
	mediaBase := "https://media.example.com"

	// URL tuyệt đối đi qua nguyên vẹn
	assert.Equal(t, "https://cdn.example.com/a.jpg",
		NormalizeImageURL("https://cdn.example.com/a.jpg", mediaBase))

	// Path gốc-tương-đối được prefix bằng media origin
	assert.Equal(t, "https://media.example.com/uploads/a.jpg",
		NormalizeImageURL("/uploads/a.jpg", mediaBase))

	// Media base có dấu / cuối không tạo double slash
	assert.Equal(t, "https://media.example.com/uploads/a.jpg",
		NormalizeImageURL("/uploads/a.jpg", mediaBase+"/"))

	// Envelope data.attributes được bóc ra
	envelope := map[string]interface{}{
		"data": map[string]interface{}{
			"attributes": map[string]interface{}{
				"url": "/uploads/b.jpg",
			},
		},
	}
	assert.Equal(t, "https://media.example.com/uploads/b.jpg",
		NormalizeImageURL(envelope, mediaBase))

	// Object {url} trực tiếp
	assert.Equal(t, "https://media.example.com/uploads/c.jpg",
		NormalizeImageURL(map[string]interface{}{"url": "/uploads/c.jpg"}, mediaBase))

	// Giá trị không nhận diện được trả về chuỗi rỗng
	assert.Equal(t, "", NormalizeImageURL(nil, mediaBase))
	assert.Equal(t, "", NormalizeImageURL(42, mediaBase))
}

func TestSchemaForKind(t *testing.T) {
	_, ok := SchemaForKind(SectionRef{Kind: KindSection, Key: "home"})
	assert.True(t, ok)

	schema, ok := SchemaForKind(SectionRef{Kind: KindLocation, Key: "district-1"})
	require.True(t, ok)
	assert.Equal(t, "locations", schema.ContentType)

	schema, ok = SchemaForKind(SectionRef{Kind: KindService, Key: "deep-clean"})
	require.True(t, ok)
	assert.Equal(t, "services", schema.ContentType)

	_, ok = SchemaForKind(SectionRef{Kind: KindSection, Key: "no-such-section"})
	assert.False(t, ok)
}
