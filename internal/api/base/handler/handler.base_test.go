package basehdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transformModel struct {
	Name     string
	Priority int64
	Active   bool
	Tags     []string
}

type transformCreateInput struct {
	Name     string
	Priority int64
	Active   bool
	Tags     []string
	Extra    string // không có bên model, phải bị bỏ qua
}

type transformUpdateInput struct {
	Name     *string
	Priority *int64
	Active   *bool
}

func TestTransformCreateInputToModel(t *testing.T) {
	h := NewBaseHandler[transformModel, transformCreateInput, transformUpdateInput](nil)

	input := transformCreateInput{
		Name:     "Giặt thảm",
		Priority: 5,
		Active:   true,
		Tags:     []string{"a", "b"},
		Extra:    "bị bỏ qua",
	}
	model, err := h.TransformCreateInputToModel(&input)
	require.NoError(t, err)

	assert.Equal(t, "Giặt thảm", model.Name)
	assert.Equal(t, int64(5), model.Priority)
	assert.True(t, model.Active)
	assert.Equal(t, []string{"a", "b"}, model.Tags)
}

func TestTransformUpdateInputSkipsNilFields(t *testing.T) {
	h := NewBaseHandler[transformModel, transformCreateInput, transformUpdateInput](nil)

	name := "Tên mới"
	input := transformUpdateInput{Name: &name}
	model, err := h.TransformUpdateInputToModel(&input)
	require.NoError(t, err)

	// Field pointer không gửi lên giữ zero value, field gửi lên được deref
	assert.Equal(t, "Tên mới", model.Name)
	assert.Equal(t, int64(0), model.Priority)
	assert.False(t, model.Active)
}
