package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yadoya/shared/locale"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		fallback string
		want     string
	}{
		{name: "supported code wins", code: "en", fallback: "ja", want: "en"},
		{name: "unknown code uses fallback", code: "fr", fallback: "zh", want: "zh"},
		{name: "unknown code and fallback default to japanese", code: "fr", fallback: "de", want: "ja"},
		{name: "empty everything defaults to japanese", code: "", fallback: "", want: "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Normalize(tt.code, tt.fallback))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "japanese", code: locale.Japanese, want: "和"},
		{name: "english", code: locale.English, want: "en"},
		{name: "chinese", code: locale.Chinese, want: "中"},
		{name: "unknown falls back to japanese", code: "fr", want: "和"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Resolve(tt.code, "和", "en", "中"))
		})
	}

	t.Run("empty variant falls back to japanese", func(t *testing.T) {
		assert.Equal(t, "和", locale.Resolve(locale.English, "和", "", "中"))
	})
}

func TestResolveWithBase(t *testing.T) {
	t.Run("translation wins over base", func(t *testing.T) {
		assert.Equal(t, "en", locale.ResolveWithBase(locale.English, "base", "和", "en", ""))
	})

	t.Run("missing translation prefers base", func(t *testing.T) {
		assert.Equal(t, "base", locale.ResolveWithBase(locale.English, "base", "和", "", ""))
	})

	t.Run("no base falls back to japanese", func(t *testing.T) {
		assert.Equal(t, "和", locale.ResolveWithBase(locale.English, "", "和", "", ""))
	})
}
