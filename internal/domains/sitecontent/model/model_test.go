package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yadoya/internal/domains/sitecontent/model"
)

func TestSanitizeMediaPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "relative path passes through", path: "img/qr/wechat.png", want: "img/qr/wechat.png"},
		{name: "leading slashes stripped", path: "//img/qr/wechat.png", want: "img/qr/wechat.png"},
		{name: "static prefix stripped", path: "static/img/qr/wechat.png", want: "img/qr/wechat.png"},
		{name: "slash and static prefix stripped", path: "/static/img/qr/wechat.png", want: "img/qr/wechat.png"},
		{name: "http url replaced with default", path: "http://evil.example/qr.png", want: "img/placeholder.jpg"},
		{name: "https url replaced with default", path: "https://evil.example/qr.png", want: "img/placeholder.jpg"},
		{name: "empty path replaced with default", path: "", want: "img/placeholder.jpg"},
		{name: "whitespace only replaced with default", path: "   ", want: "img/placeholder.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.SanitizeMediaPath(tt.path, "img/placeholder.jpg"))
		})
	}
}

func TestSanitizeExtra(t *testing.T) {
	t.Run("rewrites media entries in place", func(t *testing.T) {
		content := model.SiteContent{
			Extra: map[string]any{
				"wechat_qr": "/static/img/qr/wechat.png",
				"line_qr":   "img/qr/line.png",
				"phone":     "03-1234-5678",
			},
		}

		assert.True(t, content.SanitizeExtra())
		assert.Equal(t, "img/qr/wechat.png", content.Extra["wechat_qr"])
		assert.Equal(t, "img/qr/line.png", content.Extra["line_qr"])
		assert.Equal(t, "03-1234-5678", content.Extra["phone"], "non-media entries are untouched")
	})

	t.Run("clean map reports no change", func(t *testing.T) {
		content := model.SiteContent{
			Extra: map[string]any{"image": "img/front.jpg"},
		}

		assert.False(t, content.SanitizeExtra())
	})

	t.Run("nil map is a no-op", func(t *testing.T) {
		content := model.SiteContent{}
		assert.False(t, content.SanitizeExtra())
	})

	t.Run("non-string media entry is skipped", func(t *testing.T) {
		content := model.SiteContent{
			Extra: map[string]any{"image": 42},
		}

		assert.False(t, content.SanitizeExtra())
		assert.Equal(t, 42, content.Extra["image"])
	})
}

func TestLocalizedFields(t *testing.T) {
	content := model.SiteContent{
		HeadingJA: "アクセス",
		HeadingEN: "Access",
		BodyJA:    "駅から徒歩5分",
	}

	assert.Equal(t, "Access", content.LocalizedHeading("en"))
	assert.Equal(t, "アクセス", content.LocalizedHeading("zh"), "missing translation falls back to japanese")
	assert.Equal(t, "駅から徒歩5分", content.LocalizedBody("en"), "missing body falls back to japanese")
}
