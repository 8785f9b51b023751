package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yadoya/shared"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "empty collection is one page", total: 0, limit: 10, want: 1},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "remainder adds a page", total: 21, limit: 10, want: 3},
		{name: "zero limit is one page", total: 21, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt("42")
	assert.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = shared.ConvertStringToInt("forty-two")
	assert.Error(t, err)
}

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("not-a-bool"))

	value := shared.ConvertStringToBool("true")
	assert.NotNil(t, value)
	assert.True(t, *value)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
	assert.Equal(t, "room:gets:ja:1:10", shared.BuildCacheKey("room:gets", "ja", "1", "10"))
}
