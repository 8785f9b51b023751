package model

import (
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/locale"
)

const (
	EntityName = "message"
)

// Message is a contact-form submission. Reply fields stay empty until
// an operator answers, at which point the replied flag and timestamp
// are set.
type Message struct {
	jsonstore.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	NameJA    string `json:"name_ja,omitempty"`
	NameEN    string `json:"name_en,omitempty"`
	NameZH    string `json:"name_zh,omitempty"`
	ContentJA string `json:"content_ja,omitempty"`
	ContentEN string `json:"content_en,omitempty"`
	ContentZH string `json:"content_zh,omitempty"`
	ReplyJA   string `json:"reply_ja,omitempty"`
	ReplyEN   string `json:"reply_en,omitempty"`
	ReplyZH   string `json:"reply_zh,omitempty"`
	IsReplied bool   `json:"is_replied"`
	RepliedAt string `json:"replied_at,omitempty"`
}

func (m *Message) LocalizedName(code string) string {
	return locale.ResolveWithBase(code, m.Name, m.NameJA, m.NameEN, m.NameZH)
}

func (m *Message) LocalizedContent(code string) string {
	return locale.ResolveWithBase(code, m.Content, m.ContentJA, m.ContentEN, m.ContentZH)
}

func (m *Message) LocalizedReply(code string) string {
	return locale.Resolve(code, m.ReplyJA, m.ReplyEN, m.ReplyZH)
}
