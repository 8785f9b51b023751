package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, password.Verify("correct horse battery staple", hash))
	assert.ErrorIs(t, password.Verify("wrong", hash), password.ErrInvalidPassword)
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerifyEmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("pass", ""), password.ErrInvalidPassword)
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same input")
	require.NoError(t, err)

	second, err := password.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
