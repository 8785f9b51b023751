package model

import (
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/locale"
)

const (
	EntityName = "news"
)

// News is an announcement article. Only published articles appear on
// the public site; unpublished ones stay visible in the admin screens.
type News struct {
	jsonstore.Model
	TitleJA     string `json:"title_ja"`
	TitleEN     string `json:"title_en"`
	TitleZH     string `json:"title_zh"`
	BodyJA      string `json:"body_ja"`
	BodyEN      string `json:"body_en"`
	BodyZH      string `json:"body_zh"`
	PublishedAt string `json:"published_at"`
	IsPublished bool   `json:"is_published"`
}

func (n *News) LocalizedTitle(code string) string {
	return locale.Resolve(code, n.TitleJA, n.TitleEN, n.TitleZH)
}

func (n *News) LocalizedBody(code string) string {
	return locale.Resolve(code, n.BodyJA, n.BodyEN, n.BodyZH)
}
