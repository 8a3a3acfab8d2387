package cmssvc

import (
	"context"

	"github.com/sirupsen/logrus"

	"sparkle_cms/internal/common"
	"sparkle_cms/internal/nested"
	"sparkle_cms/internal/utility"
)

// EditorSession là một phiên chỉnh sửa nội dung section: load bản nháp,
// sửa từng field theo đường dẫn, rồi lưu cả document một lần.
// Không dùng đồng thời từ nhiều goroutine.
type EditorSession struct {
	resolver *Resolver
	ref      SectionRef
	data     map[string]interface{}
	loaded   bool
}

// NewEditorSession tạo phiên chỉnh sửa cho một section.
func NewEditorSession(resolver *Resolver, ref SectionRef) *EditorSession {
	return &EditorSession{resolver: resolver, ref: ref}
}

// Load nạp dữ liệu hiện tại của section vào phiên. Backend không trả được
// dữ liệu thì phiên vẫn mở với shape mặc định, editor luôn render được.
func (s *EditorSession) Load(ctx context.Context) error {
	schema, ok := SchemaForKind(s.ref)
	if !ok {
		return common.ErrSectionUnknown
	}

	resolution := s.resolver.Get(ctx, s.ref)
	if resolution.OK {
		// Clone để bản nháp của phiên không chia sẻ reference với dữ liệu resolver trả về
		cloned, err := utility.CloneMap(resolution.Data)
		if err != nil {
			return err
		}
		s.data = cloned
	} else {
		logrus.WithFields(logrus.Fields{
			"section": s.ref.Kind,
			"key":     s.ref.Key,
			"reason":  resolution.Reason,
		}).Warn("⚠️ Mở phiên chỉnh sửa với dữ liệu mặc định")
		s.data = BuildDefault(schema)
	}
	s.loaded = true
	return nil
}

// Data trả về bản nháp hiện tại của phiên.
func (s *EditorSession) Data() map[string]interface{} {
	return s.data
}

// GetPath đọc giá trị tại đường dẫn trong bản nháp.
func (s *EditorSession) GetPath(path string) (interface{}, error) {
	if !s.loaded {
		return nil, common.ErrNotFound
	}
	return nested.Get(s.data, path)
}

// SetPath thay giá trị tại đường dẫn. Đường dẫn sai cú pháp hoặc không
// tồn tại trong document trả lỗi ngay, bản nháp giữ nguyên.
func (s *EditorSession) SetPath(path string, value interface{}) error {
	if !s.loaded {
		return common.ErrNotFound
	}
	updated, err := nested.Set(s.data, path, value)
	if err != nil {
		return err
	}
	s.data = updated
	return nil
}

// AddListItem append một item trống vào mảng tại listPath.
func (s *EditorSession) AddListItem(listPath string) error {
	if !s.loaded {
		return common.ErrNotFound
	}
	updated, err := nested.AddItem(s.data, listPath)
	if err != nil {
		return err
	}
	s.data = updated
	return nil
}

// RemoveListItem xóa item tại vị trí index khỏi mảng tại listPath.
func (s *EditorSession) RemoveListItem(listPath string, index int) error {
	if !s.loaded {
		return common.ErrNotFound
	}
	updated, err := nested.RemoveItem(s.data, listPath, index)
	if err != nil {
		return err
	}
	s.data = updated
	return nil
}

// Save ghi bản nháp về backend (full-object overwrite).
func (s *EditorSession) Save(ctx context.Context) error {
	if !s.loaded {
		return common.ErrNotFound
	}
	return s.resolver.Save(ctx, s.ref, s.data)
}
