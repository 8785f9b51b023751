package dto

import (
	"time"

	"yadoya/internal/domains/message/model"
	"yadoya/shared"
	"yadoya/shared/constant"
)

type CreateMessageRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=320"`
	Content   string `json:"content" validate:"required,max=10000"`
	NameJA    string `json:"name_ja" validate:"max=200"`
	NameEN    string `json:"name_en" validate:"max=200"`
	NameZH    string `json:"name_zh" validate:"max=200"`
	ContentJA string `json:"content_ja" validate:"max=10000"`
	ContentEN string `json:"content_en" validate:"max=10000"`
	ContentZH string `json:"content_zh" validate:"max=10000"`
}

func (req *CreateMessageRequest) ToModel(now time.Time) *model.Message {
	return &model.Message{
		Name:      req.Name,
		Email:     req.Email,
		Content:   req.Content,
		CreatedAt: now.Format(constant.DateFormat),
		NameJA:    req.NameJA,
		NameEN:    req.NameEN,
		NameZH:    req.NameZH,
		ContentJA: req.ContentJA,
		ContentEN: req.ContentEN,
		ContentZH: req.ContentZH,
	}
}

// ReplyMessageRequest records the operator's answer. At least one
// localized reply text is required.
type ReplyMessageRequest struct {
	ReplyJA string `json:"reply_ja" validate:"max=10000"`
	ReplyEN string `json:"reply_en" validate:"max=10000"`
	ReplyZH string `json:"reply_zh" validate:"max=10000"`
}

func (req *ReplyMessageRequest) Empty() bool {
	return req.ReplyJA == "" && req.ReplyEN == "" && req.ReplyZH == ""
}

// ApplyTo writes the reply and flips the replied flag.
func (req *ReplyMessageRequest) ApplyTo(message *model.Message, now time.Time) {
	message.ReplyJA = req.ReplyJA
	message.ReplyEN = req.ReplyEN
	message.ReplyZH = req.ReplyZH
	message.IsReplied = true
	message.RepliedAt = now.Format(constant.DateFormat)
}

type MessageResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Content   string `json:"content"`
	Reply     string `json:"reply,omitempty"`
	IsReplied bool   `json:"is_replied"`
	CreatedAt string `json:"created_at"`
	RepliedAt string `json:"replied_at,omitempty"`
}

func (res *MessageResponse) FromModel(message *model.Message, localeCode string) {
	res.ID = message.ID
	res.Name = message.LocalizedName(localeCode)
	res.Email = message.Email
	res.Content = message.LocalizedContent(localeCode)
	res.Reply = message.LocalizedReply(localeCode)
	res.IsReplied = message.IsReplied
	res.CreatedAt = message.CreatedAt
	res.RepliedAt = message.RepliedAt
}

type GetMessagesResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

func (res *GetMessagesResponse) FromModels(messages []*model.Message, localeCode string, total, limit int) {
	res.Messages = make([]MessageResponse, 0, len(messages))

	for _, message := range messages {
		item := MessageResponse{}
		item.FromModel(message, localeCode)
		res.Messages = append(res.Messages, item)
	}

	res.Total = total
	res.TotalPages = shared.CalculateTotalPage(total, limit)
}
