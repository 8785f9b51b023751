package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yadoya/shared/validator"
)

type createRequest struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var req createRequest

		err := validator.Validate(strings.NewReader(`{"name":"Sato","email":"sato@example.com"}`), &req)
		assert.NoError(t, err)
		assert.Equal(t, "Sato", req.Name)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		var req createRequest

		err := validator.Validate(strings.NewReader(`{"name":`), &req)
		assert.Error(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		var req createRequest

		err := validator.Validate(strings.NewReader(`{"name":"Sato"}`), &req)
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		var req createRequest

		err := validator.Validate(strings.NewReader(`{"name":"Sato","email":"not-an-email"}`), &req)
		assert.Error(t, err)
	})
}

func TestLocaleTag(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ja", "locale"))
	assert.NoError(t, validator.ValidateVar("en", "locale"))
	assert.NoError(t, validator.ValidateVar("", "locale"), "empty locale means use the default")
	assert.Error(t, validator.ValidateVar("fr", "locale"))
}

func TestImageExtTag(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("room.jpg", "imageext"))
	assert.NoError(t, validator.ValidateVar("room.PNG", "imageext"))
	assert.Error(t, validator.ValidateVar("room.exe", "imageext"))
	assert.Error(t, validator.ValidateVar("room", "imageext"))
}

func TestMaxFileSizeTag(t *testing.T) {
	small := strings.Repeat("a", 1024)
	assert.NoError(t, validator.ValidateVar(small, "maxfilesize=1"))

	large := strings.Repeat("a", 2*1024*1024)
	assert.Error(t, validator.ValidateVar(large, "maxfilesize=1"))
}
