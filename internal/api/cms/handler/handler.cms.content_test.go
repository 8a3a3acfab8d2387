package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmssvc "sparkle_cms/internal/api/cms/service"
	"sparkle_cms/internal/common"
)

// stubBackend là content backend in-memory cho test handler.
type stubBackend struct {
	data  map[string]map[string]interface{}
	saved []cmssvc.SectionRef
}

func newStubBackend() *stubBackend {
	return &stubBackend{data: make(map[string]map[string]interface{})}
}

func (b *stubBackend) key(ref cmssvc.SectionRef) string {
	return ref.Kind + "/" + ref.Key
}

func (b *stubBackend) Fetch(ctx context.Context, ref cmssvc.SectionRef) (map[string]interface{}, error) {
	if d, ok := b.data[b.key(ref)]; ok {
		return d, nil
	}
	return nil, common.ErrNotFound
}

func (b *stubBackend) Save(ctx context.Context, ref cmssvc.SectionRef, data map[string]interface{}) error {
	b.data[b.key(ref)] = data
	b.saved = append(b.saved, ref)
	return nil
}

// envelope là shape response của surface /api/cms.
type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

func newContentApp(backend *stubBackend) *fiber.App {
	h := NewContentHandler(cmssvc.NewResolver(backend))
	app := fiber.New()
	app.Get("/api/cms/location/:slug", h.GetLocation)
	app.Post("/api/cms/location/:slug", h.SaveLocation)
	app.Get("/api/cms/service/:slug", h.GetService)
	app.Post("/api/cms/service/:slug", h.SaveService)
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestSaveLocationBySlug(t *testing.T) {
	backend := newStubBackend()
	app := newContentApp(backend)

	body := `{"heroSection": {"heading": "Rengjøring i Sentrum"}}`
	req := httptest.NewRequest("POST", "/api/cms/location/sentrum", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)

	// Backend nhận đúng ref theo slug
	require.Len(t, backend.saved, 1)
	assert.Equal(t, cmssvc.KindLocation, backend.saved[0].Kind)
	assert.Equal(t, "sentrum", backend.saved[0].Key)

	// Response là bản đã lưu merge với defaults: field ghi đè giữ nguyên,
	// field thiếu (giờ mở cửa) nhận shape mặc định đủ 7 dòng
	hero, ok := env.Data["heroSection"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rengjøring i Sentrum", hero["heading"])

	contact, ok := env.Data["contactSection"].(map[string]interface{})
	require.True(t, ok)
	hours, ok := contact["hours"].([]interface{})
	require.True(t, ok)
	assert.Len(t, hours, 7)
}

func TestSaveServiceBySlug(t *testing.T) {
	backend := newStubBackend()
	app := newContentApp(backend)

	body := `{"pricingSection": {"priceFrom": 120}}`
	req := httptest.NewRequest("POST", "/api/cms/service/deep-clean", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)

	require.Len(t, backend.saved, 1)
	assert.Equal(t, cmssvc.KindService, backend.saved[0].Kind)
	assert.Equal(t, "deep-clean", backend.saved[0].Key)

	// Bản lưu đọc lại được qua GET cùng slug
	getReq := httptest.NewRequest("GET", "/api/cms/service/deep-clean", nil)
	getResp, err := app.Test(getReq)
	require.NoError(t, err)

	getEnv := decodeEnvelope(t, getResp.Body)
	require.True(t, getEnv.Success)
	pricing, ok := getEnv.Data["pricingSection"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(120), pricing["priceFrom"])
}

func TestSaveLocationRejectsInvalidBody(t *testing.T) {
	backend := newStubBackend()
	app := newContentApp(backend)

	req := httptest.NewRequest("POST", "/api/cms/location/sentrum", strings.NewReader("khong phai json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, common.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	assert.False(t, env.Success)
	assert.Empty(t, backend.saved)
}
