package dto

import (
	"yadoya/internal/domains/sitecontent/model"
)

type CreateSiteContentRequest struct {
	Key       string         `json:"key" validate:"required,max=100"`
	HeadingJA string         `json:"heading_ja" validate:"max=500"`
	HeadingEN string         `json:"heading_en" validate:"max=500"`
	HeadingZH string         `json:"heading_zh" validate:"max=500"`
	BodyJA    string         `json:"body_ja" validate:"max=20000"`
	BodyEN    string         `json:"body_en" validate:"max=20000"`
	BodyZH    string         `json:"body_zh" validate:"max=20000"`
	Extra     map[string]any `json:"extra"`
}

func (req *CreateSiteContentRequest) ToModel() *model.SiteContent {
	content := &model.SiteContent{
		Key:       req.Key,
		HeadingJA: req.HeadingJA,
		HeadingEN: req.HeadingEN,
		HeadingZH: req.HeadingZH,
		BodyJA:    req.BodyJA,
		BodyEN:    req.BodyEN,
		BodyZH:    req.BodyZH,
		Extra:     req.Extra,
	}
	content.SanitizeExtra()

	return content
}

// UpdateSiteContentRequest carries a typed partial update. The id and
// key of a stored block never change.
type UpdateSiteContentRequest struct {
	HeadingJA *string        `json:"heading_ja" validate:"omitempty,max=500"`
	HeadingEN *string        `json:"heading_en" validate:"omitempty,max=500"`
	HeadingZH *string        `json:"heading_zh" validate:"omitempty,max=500"`
	BodyJA    *string        `json:"body_ja" validate:"omitempty,max=20000"`
	BodyEN    *string        `json:"body_en" validate:"omitempty,max=20000"`
	BodyZH    *string        `json:"body_zh" validate:"omitempty,max=20000"`
	Extra     map[string]any `json:"extra"`
}

// ApplyTo merges the set fields into the stored record.
func (req *UpdateSiteContentRequest) ApplyTo(content *model.SiteContent) {
	if req.HeadingJA != nil {
		content.HeadingJA = *req.HeadingJA
	}
	if req.HeadingEN != nil {
		content.HeadingEN = *req.HeadingEN
	}
	if req.HeadingZH != nil {
		content.HeadingZH = *req.HeadingZH
	}
	if req.BodyJA != nil {
		content.BodyJA = *req.BodyJA
	}
	if req.BodyEN != nil {
		content.BodyEN = *req.BodyEN
	}
	if req.BodyZH != nil {
		content.BodyZH = *req.BodyZH
	}
	if req.Extra != nil {
		content.Extra = req.Extra
	}

	content.SanitizeExtra()
}

type SiteContentResponse struct {
	ID      int            `json:"id"`
	Key     string         `json:"key"`
	Heading string         `json:"heading"`
	Body    string         `json:"body"`
	Extra   map[string]any `json:"extra,omitempty"`
}

func (res *SiteContentResponse) FromModel(content *model.SiteContent, localeCode string) {
	res.ID = content.ID
	res.Key = content.Key
	res.Heading = content.LocalizedHeading(localeCode)
	res.Body = content.LocalizedBody(localeCode)
	res.Extra = content.Extra
}

type GetSiteContentsResponse struct {
	Contents []SiteContentResponse `json:"contents"`
	Total    int                   `json:"total"`
}

func (res *GetSiteContentsResponse) FromModels(contents []*model.SiteContent, localeCode string) {
	res.Contents = make([]SiteContentResponse, 0, len(contents))

	for _, content := range contents {
		item := SiteContentResponse{}
		item.FromModel(content, localeCode)
		res.Contents = append(res.Contents, item)
	}

	res.Total = len(contents)
}

// HomeContentResponse wraps the free-form homepage copy document.
type HomeContentResponse struct {
	Content map[string]any `json:"content"`
}
