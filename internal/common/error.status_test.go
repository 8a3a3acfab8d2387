package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoErrorNil(t *testing.T) {
	assert.NoError(t, ConvertMongoError(nil))
}

func TestConvertMongoErrorNoDocuments(t *testing.T) {
	converted := ConvertMongoError(mongo.ErrNoDocuments)
	assert.ErrorIs(t, converted, ErrNotFound)
}

func TestConvertMongoErrorKeepsNotFound(t *testing.T) {
	// ErrNotFound đã wrap vẫn giữ nguyên, không bị đổi thành lỗi hệ thống
	wrapped := fmt.Errorf("lỗi khi tìm section: %w", ErrNotFound)
	converted := ConvertMongoError(wrapped)
	assert.ErrorIs(t, converted, ErrNotFound)
}

func TestConvertMongoErrorCommandCodes(t *testing.T) {
	tests := []struct {
		name string
		code int32
		want error
	}{
		{"connection", 150, ErrMongoConnection},
		{"auth", 250, ErrMongoAuth},
		{"query", 350, ErrMongoQuery},
		{"write", 450, ErrMongoWrite},
		{"system", 550, ErrMongoSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mongo.CommandError{Code: tt.code, Message: "lỗi mongo"}
			assert.ErrorIs(t, ConvertMongoError(err), tt.want)
		})
	}
}

func TestConvertMongoErrorUnknownBecomesDatabaseError(t *testing.T) {
	converted := ConvertMongoError(errors.New("lỗi không xác định"))
	customErr, ok := converted.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrCodeDatabase.Code, customErr.Code.Code)
	assert.Equal(t, StatusInternalServerError, customErr.StatusCode)
}

func TestErrorIsMatchesByCodeAndMessage(t *testing.T) {
	err := NewError(ErrCodeContentSection, "Content section không được hỗ trợ", StatusNotFound, nil)
	assert.ErrorIs(t, err, ErrSectionUnknown)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewErrorCarriesStatusCode(t *testing.T) {
	err := NewError(ErrCodeValidationFormat, "sai định dạng", StatusBadRequest, map[string]string{"field": "id"})
	customErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, StatusBadRequest, customErr.StatusCode)
	assert.Equal(t, "sai định dạng", customErr.Error())
}
