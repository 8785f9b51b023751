package dto

import (
	"time"

	"yadoya/internal/domains/news/model"
	"yadoya/shared"
	"yadoya/shared/constant"
)

type CreateNewsRequest struct {
	TitleJA     string `json:"title_ja" validate:"required_without_all=TitleEN TitleZH,max=500"`
	TitleEN     string `json:"title_en" validate:"max=500"`
	TitleZH     string `json:"title_zh" validate:"max=500"`
	BodyJA      string `json:"body_ja" validate:"max=20000"`
	BodyEN      string `json:"body_en" validate:"max=20000"`
	BodyZH      string `json:"body_zh" validate:"max=20000"`
	PublishedAt string `json:"published_at" validate:"omitempty"`
	IsPublished *bool  `json:"is_published"`
}

func (req *CreateNewsRequest) ToModel(now time.Time) *model.News {
	publishedAt := req.PublishedAt
	if publishedAt == "" {
		publishedAt = now.Format(constant.DateFormat)
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	return &model.News{
		TitleJA:     req.TitleJA,
		TitleEN:     req.TitleEN,
		TitleZH:     req.TitleZH,
		BodyJA:      req.BodyJA,
		BodyEN:      req.BodyEN,
		BodyZH:      req.BodyZH,
		PublishedAt: publishedAt,
		IsPublished: published,
	}
}

// UpdateNewsRequest carries a typed partial update: nil fields leave
// the stored value untouched.
type UpdateNewsRequest struct {
	TitleJA     *string `json:"title_ja" validate:"omitempty,max=500"`
	TitleEN     *string `json:"title_en" validate:"omitempty,max=500"`
	TitleZH     *string `json:"title_zh" validate:"omitempty,max=500"`
	BodyJA      *string `json:"body_ja" validate:"omitempty,max=20000"`
	BodyEN      *string `json:"body_en" validate:"omitempty,max=20000"`
	BodyZH      *string `json:"body_zh" validate:"omitempty,max=20000"`
	PublishedAt *string `json:"published_at" validate:"omitempty"`
	IsPublished *bool   `json:"is_published"`
}

// ApplyTo merges the set fields into the stored record.
func (req *UpdateNewsRequest) ApplyTo(news *model.News) {
	if req.TitleJA != nil {
		news.TitleJA = *req.TitleJA
	}
	if req.TitleEN != nil {
		news.TitleEN = *req.TitleEN
	}
	if req.TitleZH != nil {
		news.TitleZH = *req.TitleZH
	}
	if req.BodyJA != nil {
		news.BodyJA = *req.BodyJA
	}
	if req.BodyEN != nil {
		news.BodyEN = *req.BodyEN
	}
	if req.BodyZH != nil {
		news.BodyZH = *req.BodyZH
	}
	if req.PublishedAt != nil {
		news.PublishedAt = *req.PublishedAt
	}
	if req.IsPublished != nil {
		news.IsPublished = *req.IsPublished
	}
}

type NewsResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
	IsPublished bool   `json:"is_published"`
}

func (res *NewsResponse) FromModel(news *model.News, localeCode string) {
	res.ID = news.ID
	res.Title = news.LocalizedTitle(localeCode)
	res.Body = news.LocalizedBody(localeCode)
	res.PublishedAt = news.PublishedAt
	res.IsPublished = news.IsPublished
}

type GetNewsResponse struct {
	News       []NewsResponse `json:"news"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func (res *GetNewsResponse) FromModels(news []*model.News, localeCode string, total, limit int) {
	res.News = make([]NewsResponse, 0, len(news))

	for _, article := range news {
		item := NewsResponse{}
		item.FromModel(article, localeCode)
		res.News = append(res.News, item)
	}

	res.Total = total
	res.TotalPages = shared.CalculateTotalPage(total, limit)
}
