package cmssvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sparkle_cms/internal/common"
)

// HeadlessBackend là content backend gọi headless CMS qua HTTP API
// (kiểu Strapi: populate directives, filter đẳng thức, envelope data/attributes).
type HeadlessBackend struct {
	baseURL   string
	token     string // Bearer token, rỗng nghĩa là không gửi Authorization
	mediaBase string // Origin để chuẩn hóa URL media gốc-tương-đối
	client    *http.Client
}

// NewHeadlessBackend tạo backend headless CMS.
func NewHeadlessBackend(baseURL, token, mediaBase string) *HeadlessBackend {
	return &HeadlessBackend{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		mediaBase: mediaBase,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// headlessEnvelope là envelope response của headless CMS:
// single type → data là object, collection → data là mảng.
type headlessEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// headlessEntry là một entry trong envelope.
type headlessEntry struct {
	ID         json.Number            `json:"id"`
	Attributes map[string]interface{} `json:"attributes"`
}

// Fetch đọc section từ headless CMS và dịch sang shape chuẩn hóa.
// Mọi lỗi HTTP/network trả về common.ErrContentSource (non-fatal với caller),
// entry không tồn tại trả về common.ErrNotFound.
func (b *HeadlessBackend) Fetch(ctx context.Context, ref SectionRef) (map[string]interface{}, error) {
	schema, ok := SchemaForKind(ref)
	if !ok {
		return nil, common.ErrSectionUnknown
	}

	entry, err := b.fetchEntry(ctx, schema, ref)
	if err != nil {
		return nil, err
	}

	return MapFlatToNested(schema, entry.Attributes, b.mediaBase), nil
}

// Save dịch shape chuẩn hóa về field phẳng và ghi về headless CMS.
// Singleton dùng PUT trực tiếp; entry collection phải tìm id theo slug trước,
// chưa có thì POST tạo mới.
func (b *HeadlessBackend) Save(ctx context.Context, ref SectionRef, data map[string]interface{}) error {
	schema, ok := SchemaForKind(ref)
	if !ok {
		return common.ErrSectionUnknown
	}
	flat := MapNestedToFlat(schema, data)

	if ref.Kind == KindSection {
		return b.writeEntry(ctx, http.MethodPut, b.endpoint(schema.ContentType, ""), flat)
	}

	flat["slug"] = ref.Key
	entry, err := b.fetchEntry(ctx, schema, ref)
	if err == nil {
		return b.writeEntry(ctx, http.MethodPut, b.endpoint(schema.ContentType, entry.ID.String()), flat)
	}
	if errors.Is(err, common.ErrNotFound) {
		return b.writeEntry(ctx, http.MethodPost, b.endpoint(schema.ContentType, ""), flat)
	}
	return err
}

// fetchEntry lấy một entry thô từ headless CMS.
func (b *HeadlessBackend) fetchEntry(ctx context.Context, schema SectionSchema, ref SectionRef) (*headlessEntry, error) {
	query := url.Values{}
	query.Set("populate", "*")
	if ref.Kind != KindSection {
		// Lookup theo slug phải trả về tối đa một entry
		query.Set("filters[slug][$eq]", ref.Key)
	}
	requestURL := b.endpoint(schema.ContentType, "") + "?" + query.Encode()

	body, err := b.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var envelope headlessEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("response headless CMS không phải JSON hợp lệ: %w", common.ErrContentSource)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, common.ErrNotFound
	}

	// Single type: data là object. Collection: data là mảng, lấy entry đầu.
	if envelope.Data[0] == '[' {
		var entries []headlessEntry
		if err := json.Unmarshal(envelope.Data, &entries); err != nil {
			return nil, fmt.Errorf("danh sách entry không hợp lệ: %w", common.ErrContentSource)
		}
		if len(entries) == 0 {
			return nil, common.ErrNotFound
		}
		return &entries[0], nil
	}

	var entry headlessEntry
	if err := json.Unmarshal(envelope.Data, &entry); err != nil {
		return nil, fmt.Errorf("entry không hợp lệ: %w", common.ErrContentSource)
	}
	return &entry, nil
}

// writeEntry gửi payload {data: flat} về headless CMS.
func (b *HeadlessBackend) writeEntry(ctx context.Context, method, requestURL string, flat map[string]interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{"data": flat})
	if err != nil {
		return common.ErrInvalidFormat
	}
	_, err = b.doRequest(ctx, method, requestURL, payload)
	return err
}

// doRequest thực hiện HTTP request với bearer token, trả về body.
// Status ngoài 2xx hoặc lỗi network đều quy về common.ErrContentSource.
func (b *HeadlessBackend) doRequest(ctx context.Context, method, requestURL string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("không tạo được request: %w", common.ErrContentSource)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    requestURL,
	}).Debug("🔄 Gọi headless CMS")

	resp, err := b.client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("❌ Lỗi network khi gọi headless CMS")
		return nil, fmt.Errorf("lỗi network: %v: %w", err, common.ErrContentSource)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("không đọc được response: %w", common.ErrContentSource)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    requestURL,
			"body":   string(body),
		}).Warn("❌ Headless CMS trả về status lỗi")
		return nil, fmt.Errorf("headless CMS trả về status %d: %w", resp.StatusCode, common.ErrContentSource)
	}

	return body, nil
}

// endpoint ghép URL API của content type, kèm id entry nếu có.
func (b *HeadlessBackend) endpoint(contentType, id string) string {
	if id == "" {
		return b.baseURL + "/api/" + contentType
	}
	return b.baseURL + "/api/" + contentType + "/" + id
}
