package cmssvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkle_cms/internal/common"
)

func TestHeadlessFetchSingleType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/home-page", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("populate"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":1,"attributes":{"heroHeading":"Sparkling Clean","heroImage":"/uploads/hero.jpg"}}}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "test-token", "https://media.example.com")
	data, err := backend.Fetch(context.Background(), SectionRef{Kind: KindSection, Key: "home"})
	require.NoError(t, err)

	heading, _ := getNestedValue(data, "heroSection.heading")
	assert.Equal(t, "Sparkling Clean", heading)

	image, _ := getNestedValue(data, "heroSection.image")
	assert.Equal(t, "https://media.example.com/uploads/hero.jpg", image)

	// Field nguồn không có vẫn xuất hiện với default
	tagline, found := getNestedValue(data, "heroSection.tagline")
	require.True(t, found)
	assert.Equal(t, "", tagline)
}

func TestHeadlessFetchCollectionBySlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services", r.URL.Path)
		assert.Equal(t, "deep-clean", r.URL.Query().Get("filters[slug][$eq]"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":7,"attributes":{"heroHeading":"Deep Clean","priceFrom":120}}]}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	data, err := backend.Fetch(context.Background(), SectionRef{Kind: KindService, Key: "deep-clean"})
	require.NoError(t, err)

	heading, _ := getNestedValue(data, "heroSection.heading")
	assert.Equal(t, "Deep Clean", heading)

	price, _ := getNestedValue(data, "pricingSection.priceFrom")
	assert.Equal(t, float64(120), price)
}

func TestHeadlessFetchEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	_, err := backend.Fetch(context.Background(), SectionRef{Kind: KindLocation, Key: "district-1"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHeadlessFetchNullData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	_, err := backend.Fetch(context.Background(), SectionRef{Kind: KindSection, Key: "home"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHeadlessFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	_, err := backend.Fetch(context.Background(), SectionRef{Kind: KindSection, Key: "home"})
	assert.ErrorIs(t, err, common.ErrContentSource)
}

func TestHeadlessFetchNetworkError(t *testing.T) {
	// Server đã đóng: mọi request lỗi network
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	_, err := backend.Fetch(context.Background(), SectionRef{Kind: KindSection, Key: "home"})
	assert.ErrorIs(t, err, common.ErrContentSource)
}

func TestHeadlessFetchUnknownSection(t *testing.T) {
	backend := NewHeadlessBackend("http://localhost:1", "", "")
	_, err := backend.Fetch(context.Background(), SectionRef{Kind: KindSection, Key: "khong-ton-tai"})
	assert.ErrorIs(t, err, common.ErrSectionUnknown)
}

func TestHeadlessSaveSingleType(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":1,"attributes":{}}}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	data := map[string]interface{}{
		"heroSection": map[string]interface{}{"heading": "Mới"},
	}
	require.NoError(t, backend.Save(context.Background(), SectionRef{Kind: KindSection, Key: "home"}, data))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/home-page", gotPath)
}

func TestHeadlessSaveCollectionCreatesWhenMissing(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		w.Write([]byte(`{"data":{"id":9,"attributes":{}}}`))
	}))
	defer server.Close()

	backend := NewHeadlessBackend(server.URL, "", "")
	data := map[string]interface{}{
		"heroSection": map[string]interface{}{"heading": "Quận mới"},
	}
	require.NoError(t, backend.Save(context.Background(), SectionRef{Kind: KindLocation, Key: "district-9"}, data))
	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, methods)
}
