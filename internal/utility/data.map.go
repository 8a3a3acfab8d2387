package utility

import (
	"encoding/json"
	"fmt"
)

// ToMap chuyển đổi interface thành bản đồ.
// Nó nhận interface làm tham số và trả về bản đồ và lỗi nếu có
func ToMap(s interface{}) (map[string]interface{}, error) {
	jsonBytes, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi chuyển đổi struct thành JSON: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil, fmt.Errorf("lỗi khi chuyển đổi JSON thành map: %v", err)
	}
	return result, nil
}

// CloneMap tạo một bản sao sâu (deep copy) của map thông qua JSON round-trip.
// Dùng khi cần mutate một document mà không ảnh hưởng tới bản gốc (editor session, defaults).
// Lưu ý: số trong map kết quả là float64 theo chuẩn encoding/json.
func CloneMap(m map[string]interface{}) (map[string]interface{}, error) {
	if m == nil {
		return map[string]interface{}{}, nil
	}
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi clone map: %v", err)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil, fmt.Errorf("lỗi khi clone map: %v", err)
	}
	return result, nil
}
