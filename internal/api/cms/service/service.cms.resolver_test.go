package cmssvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkle_cms/internal/common"
)

// fakeBackend là ContentBackend in-memory cho test resolver và editor.
type fakeBackend struct {
	data     map[string]map[string]interface{}
	fetchErr error
	saveErr  error
	saved    []SectionRef
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string]map[string]interface{})}
}

func (b *fakeBackend) key(ref SectionRef) string {
	return ref.Kind + "/" + ref.Key
}

func (b *fakeBackend) Fetch(ctx context.Context, ref SectionRef) (map[string]interface{}, error) {
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	data, ok := b.data[b.key(ref)]
	if !ok {
		return nil, common.ErrNotFound
	}
	return data, nil
}

func (b *fakeBackend) Save(ctx context.Context, ref SectionRef, data map[string]interface{}) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data[b.key(ref)] = data
	b.saved = append(b.saved, ref)
	return nil
}

func TestResolverGetSuccess(t *testing.T) {
	backend := newFakeBackend()
	ref := SectionRef{Kind: KindSection, Key: "home"}
	backend.data[backend.key(ref)] = map[string]interface{}{
		"heroSection": map[string]interface{}{"heading": "Xin chào"},
	}

	resolver := NewResolver(backend)
	resolution := resolver.Get(context.Background(), ref)

	require.True(t, resolution.OK)
	heading, _ := getNestedValue(resolution.Data, "heroSection.heading")
	assert.Equal(t, "Xin chào", heading)

	// Field thiếu được merge với default
	tagline, found := getNestedValue(resolution.Data, "heroSection.tagline")
	require.True(t, found)
	assert.Equal(t, "", tagline)
}

func TestResolverGetNotFound(t *testing.T) {
	resolver := NewResolver(newFakeBackend())
	resolution := resolver.Get(context.Background(), SectionRef{Kind: KindSection, Key: "home"})

	assert.False(t, resolution.OK)
	assert.Equal(t, ReasonNotFound, resolution.Reason)
	assert.Nil(t, resolution.Data)
}

func TestResolverGetTransportError(t *testing.T) {
	backend := newFakeBackend()
	backend.fetchErr = common.ErrContentSource

	resolver := NewResolver(backend)
	resolution := resolver.Get(context.Background(), SectionRef{Kind: KindSection, Key: "home"})

	assert.False(t, resolution.OK)
	assert.Equal(t, ReasonTransport, resolution.Reason)
}

func TestResolverGetBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.fetchErr = errors.New("lỗi không phân loại được")

	resolver := NewResolver(backend)
	resolution := resolver.Get(context.Background(), SectionRef{Kind: KindSection, Key: "home"})

	assert.False(t, resolution.OK)
	assert.Equal(t, ReasonBackend, resolution.Reason)
}

func TestResolverGetUnknownSection(t *testing.T) {
	resolver := NewResolver(newFakeBackend())
	resolution := resolver.Get(context.Background(), SectionRef{Kind: KindSection, Key: "khong-ton-tai"})

	assert.False(t, resolution.OK)
	assert.Equal(t, ReasonNotFound, resolution.Reason)
}

func TestResolverSave(t *testing.T) {
	backend := newFakeBackend()
	resolver := NewResolver(backend)
	ref := SectionRef{Kind: KindSection, Key: "about"}

	data := map[string]interface{}{
		"heroSection": map[string]interface{}{"heading": "Về chúng tôi"},
	}
	require.NoError(t, resolver.Save(context.Background(), ref, data))
	require.Len(t, backend.saved, 1)
	assert.Equal(t, ref, backend.saved[0])

	// Section không có schema thì từ chối trước khi chạm backend
	err := resolver.Save(context.Background(), SectionRef{Kind: KindSection, Key: "khong-ton-tai"}, data)
	assert.ErrorIs(t, err, common.ErrSectionUnknown)
	assert.Len(t, backend.saved, 1)
}

func TestClassifyFetchError(t *testing.T) {
	assert.Equal(t, ReasonNotFound, classifyFetchError(common.ErrNotFound))
	assert.Equal(t, ReasonTransport, classifyFetchError(common.ErrContentSource))
	assert.Equal(t, ReasonTransport, classifyFetchError(common.ErrConnection))
	assert.Equal(t, ReasonBackend, classifyFetchError(errors.New("khác")))
}
