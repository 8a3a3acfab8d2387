package cmssvc

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"sparkle_cms/internal/common"
)

// Loại content section
const (
	KindSection  = "section"  // Section singleton (home, about...)
	KindLocation = "location" // Trang địa điểm theo slug
	KindService  = "service"  // Trang dịch vụ theo slug
)

// Reason phân loại vì sao một lần resolve không có dữ liệu
const (
	ReasonNotFound  = "not_found" // Backend không có bản ghi
	ReasonTransport = "transport" // Lỗi mạng/HTTP khi gọi backend
	ReasonBackend   = "backend"   // Backend trả lỗi khác
)

// SectionRef định danh một content section: loại + key (name hoặc slug).
type SectionRef struct {
	Kind string
	Key  string
}

// Resolution là kết quả resolve một section. Resolver không bao giờ ném lỗi
// lên caller vì lý do thiếu dữ liệu: OK=false kèm Reason để caller phân biệt
// "không có dữ liệu" với "lỗi đường truyền" và log tương ứng, nhưng cả hai
// đều degrade về render với defaults chứ không fatal.
type Resolution struct {
	OK     bool
	Data   map[string]interface{}
	Reason string
}

// ContentBackend là một nguồn nội dung vật lý (Mongo hoặc headless CMS).
// Backend được chọn MỘT LẦN lúc khởi tạo resolver và không đổi giữa chừng:
// một lần resolve không bao giờ đọc từ backend này rồi ghi sang backend kia.
type ContentBackend interface {
	// Fetch đọc dữ liệu thô của section. Trả về common.ErrNotFound khi không
	// có bản ghi, common.ErrContentSource khi lỗi đường truyền/HTTP.
	Fetch(ctx context.Context, ref SectionRef) (map[string]interface{}, error)

	// Save ghi đè toàn bộ dữ liệu section (full-object overwrite, tạo mới nếu chưa có).
	Save(ctx context.Context, ref SectionRef, data map[string]interface{}) error
}

// Resolver cung cấp API đọc/ghi thống nhất cho mọi content section,
// độc lập với backend vật lý phía sau.
type Resolver struct {
	backend ContentBackend
}

// NewResolver tạo resolver với backend đã chọn (inject lúc khởi tạo,
// không đọc env giữa chừng để test được cả hai backend trong một process).
func NewResolver(backend ContentBackend) *Resolver {
	return &Resolver{backend: backend}
}

// Get resolve một section về shape chuẩn hóa với mọi field được default.
// Không bao giờ trả lỗi: mọi thất bại thể hiện qua Resolution.OK và Reason.
func (r *Resolver) Get(ctx context.Context, ref SectionRef) Resolution {
	schema, ok := SchemaForKind(ref)
	if !ok {
		return Resolution{OK: false, Reason: ReasonNotFound}
	}

	raw, err := r.backend.Fetch(ctx, ref)
	if err != nil {
		reason := classifyFetchError(err)
		logrus.WithFields(logrus.Fields{
			"section": ref.Kind,
			"key":     ref.Key,
			"reason":  reason,
		}).WithError(err).Warn("❌ Không resolve được content section")
		return Resolution{OK: false, Reason: reason}
	}

	return Resolution{OK: true, Data: MergeWithDefaults(schema, raw)}
}

// Save ghi đè toàn bộ section (last-write-wins, không có version check).
func (r *Resolver) Save(ctx context.Context, ref SectionRef, data map[string]interface{}) error {
	if _, ok := SchemaForKind(ref); !ok {
		return common.ErrSectionUnknown
	}
	if err := r.backend.Save(ctx, ref, data); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"section": ref.Kind,
		"key":     ref.Key,
	}).Info("✅ Đã lưu content section")
	return nil
}

// classifyFetchError phân loại lỗi fetch thành reason cho Resolution.
func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, common.ErrContentSource),
		errors.Is(err, common.ErrConnection),
		errors.Is(err, common.ErrMongoNetwork),
		errors.Is(err, common.ErrMongoTimeout):
		return ReasonTransport
	default:
		return ReasonBackend
	}
}
