package dto

import (
	"net/http"
	"strconv"

	"yadoya/shared/constant"
)

type QueryParams struct {
	Page  int `json:"page"  validate:"omitempty"`
	Limit int `json:"limit" validate:"omitempty"`
}

// FromRequest populates QueryParams from the HTTP request.
// It's recommended to call this method with `defaultRequest` set to true if data is large
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// This will set default values for Page and Limit if they are not provided in the request.
// If `defaultRequest` is false, it will only populate the fields that are present in the request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = limitInt
		}
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Slice applies the pagination window to an in-memory collection length,
// returning the [from, to) bounds. With no limit set the full range is
// returned.
func (q QueryParams) Slice(total int) (from, to int) {
	if q.Limit <= 0 {
		return 0, total
	}

	page := q.Page
	if page <= 0 {
		page = constant.DefaultValuePage
	}

	from = (page - 1) * q.Limit
	if from > total {
		return total, total
	}

	to = from + q.Limit
	if to > total {
		to = total
	}

	return from, to
}
