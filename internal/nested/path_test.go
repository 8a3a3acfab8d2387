package nested

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkle_cms/internal/common"
)

func sampleDoc() map[string]interface{} {
	return map[string]interface{}{
		"heroSection": map[string]interface{}{
			"title":    "Rengjøring i Bergen",
			"subtitle": "Profesjonell vask",
		},
		"contactSection": map[string]interface{}{
			"phone": "+47 123 45 678",
			"hours": []interface{}{
				map[string]interface{}{"day": "Monday", "hours": "08-16"},
				map[string]interface{}{"day": "Tuesday", "hours": "08-16"},
				map[string]interface{}{"day": "Wednesday", "hours": ""},
			},
		},
		"features": []interface{}{"vask", "rydding"},
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"đường dẫn đơn", "title", false},
		{"đường dẫn lồng nhau", "heroSection.title", false},
		{"đường dẫn có chỉ số mảng", "contactSection.hours[2].hours", false},
		{"đường dẫn rỗng", "", true},
		{"segment rỗng", "a..b", true},
		{"chỉ số không phải số", "hours[x]", true},
		{"chỉ số âm", "hours[-1]", true},
		{"thiếu dấu đóng", "hours[2", true},
		{"thiếu tên field", "[2].hours", true},
		{"dấu ] thừa", "hours]2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidPath)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	doc := sampleDoc()

	value, err := Get(doc, "heroSection.title")
	require.NoError(t, err)
	assert.Equal(t, "Rengjøring i Bergen", value)

	value, err = Get(doc, "contactSection.hours[1].day")
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", value)

	_, err = Get(doc, "heroSection.missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = Get(doc, "contactSection.hours[9].day")
	assert.ErrorIs(t, err, common.ErrInvalidPath)
}

func TestSetChangesOnlyTargetLeaf(t *testing.T) {
	doc := sampleDoc()

	updated, err := Set(doc, "contactSection.hours[2].hours", "10-14")
	require.NoError(t, err)

	// Leaf mới có giá trị mới
	value, err := Get(updated, "contactSection.hours[2].hours")
	require.NoError(t, err)
	assert.Equal(t, "10-14", value)

	// Document gốc không bị thay đổi
	original, err := Get(doc, "contactSection.hours[2].hours")
	require.NoError(t, err)
	assert.Equal(t, "", original)

	// Nhánh anh em giữ nguyên reference (không bị clone)
	assert.Equal(t,
		doc["heroSection"].(map[string]interface{}),
		updated["heroSection"].(map[string]interface{}))

	// Sibling item trong mảng cũng giữ nguyên
	origHours := doc["contactSection"].(map[string]interface{})["hours"].([]interface{})
	newHours := updated["contactSection"].(map[string]interface{})["hours"].([]interface{})
	assert.Equal(t, origHours[0], newHours[0])
	assert.Equal(t, origHours[1], newHours[1])
}

func TestSetRejectsUnknownSegments(t *testing.T) {
	doc := sampleDoc()

	// Không tự tạo shape mới khi field trung gian không tồn tại
	_, err := Set(doc, "unknownSection.title", "x")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Leaf gõ sai tên cũng bị từ chối, không thêm field rác vào document
	_, err = Set(doc, "heroSection.titel", "x")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Document gốc không có field mới sau các lần Set thất bại
	_, err = Get(doc, "heroSection.titel")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Len(t, doc["heroSection"].(map[string]interface{}), 2)
}

func TestAddItem(t *testing.T) {
	doc := sampleDoc()

	updated, err := AddItem(doc, "contactSection.hours")
	require.NoError(t, err)

	newHours := updated["contactSection"].(map[string]interface{})["hours"].([]interface{})
	require.Len(t, newHours, 4)

	// Item mới có shape giống item hiện có, giá trị trống
	blank, ok := newHours[3].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "", blank["day"])
	assert.Equal(t, "", blank["hours"])

	// Document gốc không đổi
	assert.Len(t, doc["contactSection"].(map[string]interface{})["hours"].([]interface{}), 3)
}

func TestRemoveItem(t *testing.T) {
	doc := sampleDoc()

	updated, err := RemoveItem(doc, "contactSection.hours", 1)
	require.NoError(t, err)

	newHours := updated["contactSection"].(map[string]interface{})["hours"].([]interface{})
	require.Len(t, newHours, 2)

	// Thứ tự các item còn lại giữ nguyên, item sau dồn lên
	assert.Equal(t, "Monday", newHours[0].(map[string]interface{})["day"])
	assert.Equal(t, "Wednesday", newHours[1].(map[string]interface{})["day"])

	_, err = RemoveItem(doc, "contactSection.hours", 9)
	assert.ErrorIs(t, err, common.ErrInvalidPath)
}
