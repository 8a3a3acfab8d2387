// Package nested cung cấp các thao tác đọc/ghi field lồng nhau trên document
// dạng map theo đường dẫn dạng chuỗi, ví dụ "heroSection.title" hay
// "contactSection.hours[2].hours". Đây là helper dùng chung cho mọi màn hình
// chỉnh sửa nội dung: thay vì mỗi nơi tự deep-clone rồi gán lại, tất cả đi qua
// một parser duy nhất. Đường dẫn sai cú pháp trả về lỗi ngay, không tự tạo
// shape mới trong document.
package nested

import (
	"fmt"
	"strconv"
	"strings"

	"sparkle_cms/internal/common"
)

// segment là một phần tử của đường dẫn sau khi parse.
// Ví dụ "hours[2]" → {Key: "hours", Index: 2, HasIndex: true}
type segment struct {
	Key      string
	Index    int
	HasIndex bool
}

// ParsePath kiểm tra và tách đường dẫn thành các segment.
// Cú pháp hợp lệ: các key phân cách bằng dấu chấm, mỗi key có thể kèm
// đúng một chỉ số mảng dạng [n] với n là số không âm.
func ParsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("đường dẫn rỗng: %w", common.ErrInvalidPath)
	}

	parts := strings.Split(path, ".")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("đường dẫn %q chứa segment rỗng: %w", path, common.ErrInvalidPath)
		}

		seg := segment{Index: -1}
		bracket := strings.Index(part, "[")
		if bracket == -1 {
			if strings.Contains(part, "]") {
				return nil, fmt.Errorf("segment %q có dấu ] thừa: %w", part, common.ErrInvalidPath)
			}
			seg.Key = part
		} else {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("segment %q thiếu dấu ] đóng: %w", part, common.ErrInvalidPath)
			}
			seg.Key = part[:bracket]
			idxStr := part[bracket+1 : len(part)-1]
			if seg.Key == "" {
				return nil, fmt.Errorf("segment %q thiếu tên field trước chỉ số: %w", part, common.ErrInvalidPath)
			}
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("chỉ số mảng %q không hợp lệ: %w", idxStr, common.ErrInvalidPath)
			}
			seg.Index = idx
			seg.HasIndex = true
		}

		if strings.ContainsAny(seg.Key, "[]") {
			return nil, fmt.Errorf("segment %q chứa ký tự không hợp lệ: %w", part, common.ErrInvalidPath)
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// Get đọc giá trị tại đường dẫn. Trả về lỗi nếu đường dẫn sai cú pháp
// hoặc không tồn tại trong document.
func Get(doc map[string]interface{}, path string) (interface{}, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	var current interface{} = doc
	for _, seg := range segments {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q không phải object: %w", seg.Key, common.ErrInvalidPath)
		}
		value, exists := m[seg.Key]
		if !exists {
			return nil, fmt.Errorf("field %q không tồn tại: %w", seg.Key, common.ErrNotFound)
		}
		if seg.HasIndex {
			list, ok := value.([]interface{})
			if !ok {
				return nil, fmt.Errorf("field %q không phải mảng: %w", seg.Key, common.ErrInvalidPath)
			}
			if seg.Index >= len(list) {
				return nil, fmt.Errorf("chỉ số %d vượt quá độ dài mảng %q (%d): %w", seg.Index, seg.Key, len(list), common.ErrInvalidPath)
			}
			value = list[seg.Index]
		}
		current = value
	}

	return current, nil
}

// Set thay giá trị tại đường dẫn và trả về document MỚI: leaf được thay,
// mọi object/mảng tổ tiên trên đường dẫn được shallow-copy, các nhánh anh em
// giữ nguyên reference. Document gốc không bị thay đổi. Mọi segment của đường
// dẫn, kể cả leaf, phải tồn tại sẵn trong document: key gõ sai không tạo
// field rác mà trả lỗi ngay.
func Set(doc map[string]interface{}, path string, value interface{}) (map[string]interface{}, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	result, err := setSegments(doc, segments, value)
	if err != nil {
		return nil, err
	}
	return result.(map[string]interface{}), nil
}

// setSegments xử lý đệ quy từng segment, copy node hiện tại rồi gán nhánh con mới.
func setSegments(current interface{}, segments []segment, value interface{}) (interface{}, error) {
	seg := segments[0]

	m, ok := current.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q không phải object: %w", seg.Key, common.ErrInvalidPath)
	}

	// Shallow copy node hiện tại, nhánh anh em giữ nguyên reference
	copied := make(map[string]interface{}, len(m))
	for k, v := range m {
		copied[k] = v
	}

	child, exists := copied[seg.Key]
	if !exists {
		return nil, fmt.Errorf("field %q không tồn tại: %w", seg.Key, common.ErrNotFound)
	}

	if seg.HasIndex {
		list, ok := child.([]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q không phải mảng: %w", seg.Key, common.ErrInvalidPath)
		}
		if seg.Index >= len(list) {
			return nil, fmt.Errorf("chỉ số %d vượt quá độ dài mảng %q (%d): %w", seg.Index, seg.Key, len(list), common.ErrInvalidPath)
		}
		copiedList := make([]interface{}, len(list))
		copy(copiedList, list)

		if len(segments) == 1 {
			copiedList[seg.Index] = value
		} else {
			newChild, err := setSegments(list[seg.Index], segments[1:], value)
			if err != nil {
				return nil, err
			}
			copiedList[seg.Index] = newChild
		}
		copied[seg.Key] = copiedList
		return copied, nil
	}

	if len(segments) == 1 {
		copied[seg.Key] = value
		return copied, nil
	}

	newChild, err := setSegments(child, segments[1:], value)
	if err != nil {
		return nil, err
	}
	copied[seg.Key] = newChild
	return copied, nil
}

// AddItem append một item trống (shape giống item hiện có) vào mảng tại listPath.
// Mảng rỗng thì append map rỗng vì không biết shape của item.
func AddItem(doc map[string]interface{}, listPath string) (map[string]interface{}, error) {
	raw, err := Get(doc, listPath)
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field tại %q không phải mảng: %w", listPath, common.ErrInvalidPath)
	}

	var blank interface{} = map[string]interface{}{}
	if len(list) > 0 {
		blank = blankLike(list[len(list)-1])
	}

	newList := make([]interface{}, len(list), len(list)+1)
	copy(newList, list)
	newList = append(newList, blank)

	return Set(doc, listPath, newList)
}

// RemoveItem xóa item tại vị trí index khỏi mảng tại listPath.
// Index là vị trí, không phải identifier: các item sau dồn lên.
func RemoveItem(doc map[string]interface{}, listPath string, index int) (map[string]interface{}, error) {
	raw, err := Get(doc, listPath)
	if err != nil {
		return nil, err
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field tại %q không phải mảng: %w", listPath, common.ErrInvalidPath)
	}
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("chỉ số %d vượt quá độ dài mảng tại %q (%d): %w", index, listPath, len(list), common.ErrInvalidPath)
	}

	newList := make([]interface{}, 0, len(list)-1)
	newList = append(newList, list[:index]...)
	newList = append(newList, list[index+1:]...)

	return Set(doc, listPath, newList)
}

// blankLike tạo giá trị trống cùng shape với giá trị mẫu:
// object → object cùng key với value trống, mảng → mảng rỗng, scalar → zero value.
func blankLike(sample interface{}) interface{} {
	switch v := sample.(type) {
	case map[string]interface{}:
		blank := make(map[string]interface{}, len(v))
		for k, inner := range v {
			blank[k] = blankLike(inner)
		}
		return blank
	case []interface{}:
		return []interface{}{}
	case string:
		return ""
	case bool:
		return false
	case float64, float32, int, int32, int64:
		return float64(0)
	default:
		return nil
	}
}
