package cmssvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkle_cms/internal/common"
)

func newLoadedSession(t *testing.T, backend *fakeBackend, ref SectionRef) *EditorSession {
	t.Helper()
	session := NewEditorSession(NewResolver(backend), ref)
	require.NoError(t, session.Load(context.Background()))
	return session
}

func TestEditorLoadFallsBackToDefaults(t *testing.T) {
	// Backend không có dữ liệu: phiên vẫn mở được với shape mặc định
	session := newLoadedSession(t, newFakeBackend(), SectionRef{Kind: KindSection, Key: "contact"})

	hours, err := session.GetPath("contactSection.hours")
	require.NoError(t, err)
	assert.Len(t, hours.([]interface{}), 7)
}

func TestEditorLoadUnknownSection(t *testing.T) {
	session := NewEditorSession(NewResolver(newFakeBackend()), SectionRef{Kind: KindSection, Key: "khong-ton-tai"})
	err := session.Load(context.Background())
	assert.ErrorIs(t, err, common.ErrSectionUnknown)
}

func TestEditorSetPathSiblingIsolation(t *testing.T) {
	backend := newFakeBackend()
	ref := SectionRef{Kind: KindSection, Key: "home"}
	session := newLoadedSession(t, backend, ref)

	before := session.Data()
	intro := before["introSection"].(map[string]interface{})
	hero := before["heroSection"].(map[string]interface{})

	require.NoError(t, session.SetPath("heroSection.heading", "Tiêu đề mới"))

	value, err := session.GetPath("heroSection.heading")
	require.NoError(t, err)
	assert.Equal(t, "Tiêu đề mới", value)

	// Nhánh anh em giữ nguyên reference: sửa map cũ thấy được qua bản nháp mới
	intro["text"] = "marker"
	text, err := session.GetPath("introSection.text")
	require.NoError(t, err)
	assert.Equal(t, "marker", text)

	// Nhánh bị sửa là bản copy, map cũ không đổi
	assert.Equal(t, "", hero["heading"])
}

func TestEditorSetPathInvalidPathKeepsDraft(t *testing.T) {
	session := newLoadedSession(t, newFakeBackend(), SectionRef{Kind: KindSection, Key: "home"})

	err := session.SetPath("heroSection..heading", "x")
	assert.ErrorIs(t, err, common.ErrInvalidPath)

	// Bản nháp không đổi sau lỗi
	value, getErr := session.GetPath("heroSection.heading")
	require.NoError(t, getErr)
	assert.Equal(t, "", value)
}

func TestEditorListItems(t *testing.T) {
	session := newLoadedSession(t, newFakeBackend(), SectionRef{Kind: KindSection, Key: "home"})

	require.NoError(t, session.AddListItem("featuresSection.items"))
	require.NoError(t, session.AddListItem("featuresSection.items"))
	require.NoError(t, session.SetPath("featuresSection.items[0]", map[string]interface{}{"title": "Giặt thảm"}))

	items, err := session.GetPath("featuresSection.items")
	require.NoError(t, err)
	assert.Len(t, items.([]interface{}), 2)

	require.NoError(t, session.RemoveListItem("featuresSection.items", 1))
	items, err = session.GetPath("featuresSection.items")
	require.NoError(t, err)
	require.Len(t, items.([]interface{}), 1)
	assert.Equal(t, map[string]interface{}{"title": "Giặt thảm"}, items.([]interface{})[0])

	// Index ngoài phạm vi bị từ chối
	err = session.RemoveListItem("featuresSection.items", 5)
	assert.ErrorIs(t, err, common.ErrInvalidPath)
}

func TestEditorSave(t *testing.T) {
	backend := newFakeBackend()
	ref := SectionRef{Kind: KindSection, Key: "home"}
	session := newLoadedSession(t, backend, ref)

	require.NoError(t, session.SetPath("heroSection.heading", "Đã sửa"))
	require.NoError(t, session.Save(context.Background()))

	require.Len(t, backend.saved, 1)
	saved := backend.data[backend.key(ref)]
	heading, _ := getNestedValue(saved, "heroSection.heading")
	assert.Equal(t, "Đã sửa", heading)
}

func TestEditorRequiresLoad(t *testing.T) {
	session := NewEditorSession(NewResolver(newFakeBackend()), SectionRef{Kind: KindSection, Key: "home"})

	assert.Error(t, session.SetPath("heroSection.heading", "x"))
	assert.Error(t, session.AddListItem("featuresSection.items"))
	assert.Error(t, session.Save(context.Background()))
}
