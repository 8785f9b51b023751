package model

import (
	"strings"

	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
	"yadoya/shared/locale"
)

const (
	EntityName = "sitecontent"
)

// SiteContent is an editable copy block addressed by a stable key
// ("contact", "access", ...). Extra holds free-form values such as QR
// image paths and social handles.
type SiteContent struct {
	jsonstore.Model
	Key       string         `json:"key"`
	HeadingJA string         `json:"heading_ja"`
	HeadingEN string         `json:"heading_en"`
	HeadingZH string         `json:"heading_zh"`
	BodyJA    string         `json:"body_ja"`
	BodyEN    string         `json:"body_en"`
	BodyZH    string         `json:"body_zh"`
	Extra     map[string]any `json:"extra,omitempty"`
}

func (c *SiteContent) LocalizedHeading(code string) string {
	return locale.Resolve(code, c.HeadingJA, c.HeadingEN, c.HeadingZH)
}

func (c *SiteContent) LocalizedBody(code string) string {
	return locale.Resolve(code, c.BodyJA, c.BodyEN, c.BodyZH)
}

// SanitizeMediaPath normalizes an asset reference coming from the extra
// map so it always points below the static root. Absolute URLs are
// rejected in favor of the default.
func SanitizeMediaPath(path, def string) string {
	candidate := strings.TrimSpace(path)
	if candidate == "" || strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		candidate = def
	}

	cleaned := strings.TrimLeft(candidate, "/")
	cleaned = strings.TrimPrefix(cleaned, "static/")

	if cleaned == "" {
		cleaned = def
	}

	return cleaned
}

// SanitizeExtra rewrites the media entries of the extra map in place
// and reports whether anything changed.
func (c *SiteContent) SanitizeExtra() bool {
	if c.Extra == nil {
		return false
	}

	changed := false

	for _, key := range []string{"wechat_qr", "line_qr", "image"} {
		raw, ok := c.Extra[key]
		if !ok {
			continue
		}

		value, ok := raw.(string)
		if !ok {
			continue
		}

		cleaned := SanitizeMediaPath(value, constant.DefaultRoomImage)
		if cleaned != value {
			c.Extra[key] = cleaned
			changed = true
		}
	}

	return changed
}
