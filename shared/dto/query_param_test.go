package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"yadoya/shared/dto"
)

func TestQueryParams_FromRequest(t *testing.T) {
	t.Run("reads page and limit", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/rooms?page=3&limit=5", nil)

		q := dto.QueryParams{}
		q.FromRequest(r, true)

		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 5, q.Limit)
	})

	t.Run("defaults apply when requested", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/rooms", nil)

		q := dto.QueryParams{}
		q.FromRequest(r, true)

		assert.NotZero(t, q.Page)
		assert.NotZero(t, q.Limit)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/rooms?page=-1&limit=abc", nil)

		q := dto.QueryParams{}
		q.FromRequest(r, false)

		assert.Zero(t, q.Page)
		assert.Zero(t, q.Limit)
	})
}

func TestQueryParams_Slice(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		total    int
		wantFrom int
		wantTo   int
	}{
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 2}, total: 5, wantFrom: 0, wantTo: 2},
		{name: "middle page", params: dto.QueryParams{Page: 2, Limit: 2}, total: 5, wantFrom: 2, wantTo: 4},
		{name: "short last page", params: dto.QueryParams{Page: 3, Limit: 2}, total: 5, wantFrom: 4, wantTo: 5},
		{name: "page past the end", params: dto.QueryParams{Page: 9, Limit: 2}, total: 5, wantFrom: 5, wantTo: 5},
		{name: "no limit returns everything", params: dto.QueryParams{}, total: 5, wantFrom: 0, wantTo: 5},
		{name: "zero page treated as first", params: dto.QueryParams{Limit: 3}, total: 5, wantFrom: 0, wantTo: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.params.Slice(tt.total)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
