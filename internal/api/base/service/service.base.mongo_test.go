package basesvc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUpdateDataPassthrough(t *testing.T) {
	update := &UpdateData{Set: map[string]interface{}{"name": "a"}}

	got, err := ToUpdateData(update)
	require.NoError(t, err)
	assert.Same(t, update, got)

	got, err = ToUpdateData(*update)
	require.NoError(t, err)
	assert.Equal(t, update.Set, got.Set)
}

func TestToUpdateDataWrapsPlainMap(t *testing.T) {
	got, err := ToUpdateData(map[string]interface{}{"question": "Q?", "priority": 3})
	require.NoError(t, err)
	assert.Equal(t, "Q?", got.Set["question"])
	assert.Nil(t, got.Unset)
}

func TestToUpdateDataKeepsOperators(t *testing.T) {
	got, err := ToUpdateData(map[string]interface{}{
		"$set":   map[string]interface{}{"question": "Q?"},
		"$unset": map[string]interface{}{"category": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Q?", got.Set["question"])
	assert.Contains(t, got.Unset, "category")
}

func TestParseDefaultValue(t *testing.T) {
	boolType := reflect.TypeOf(false)
	int64Type := reflect.TypeOf(int64(0))
	stringType := reflect.TypeOf("")

	assert.Equal(t, true, parseDefaultValue("true", boolType))
	assert.Equal(t, false, parseDefaultValue("false", boolType))
	assert.Equal(t, int64(5), parseDefaultValue("5", int64Type))
	assert.Equal(t, "general", parseDefaultValue("general", stringType))

	// Kiểu không hỗ trợ thì không sinh default
	assert.Nil(t, parseDefaultValue("1.5", reflect.TypeOf([]string{})))
}

type defaultTagModel struct {
	Category string `bson:"category" default:"general"`
	IsActive bool   `bson:"isActive" default:"true"`
	Question string `bson:"question"`
}

func TestGetInsertDefaultsFromModelType(t *testing.T) {
	defaults := getInsertDefaultsFromModelType(reflect.TypeOf(defaultTagModel{}))
	assert.Equal(t, "general", defaults["category"])
	assert.Equal(t, true, defaults["isActive"])
	_, hasQuestion := defaults["question"]
	assert.False(t, hasQuestion)
}

func TestApplyInsertDefaultsToModel(t *testing.T) {
	m := defaultTagModel{Question: "Q?"}
	applyInsertDefaultsToModel(&m)
	assert.Equal(t, "general", m.Category)
	assert.True(t, m.IsActive)

	// Field đã có giá trị không bị ghi đè
	m2 := defaultTagModel{Category: "booking"}
	applyInsertDefaultsToModel(&m2)
	assert.Equal(t, "booking", m2.Category)
}
