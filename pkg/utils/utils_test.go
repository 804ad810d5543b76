package utils_test

import (
	"testing"

	"github.com/amirasaad/finance/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passphrase", hash)
	assert.True(t, utils.CheckPasswordHash("s3cret-passphrase", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestIsEmail(t *testing.T) {
	t.Parallel()
	assert.True(t, utils.IsEmail("ada@example.com"))
	assert.True(t, utils.IsEmail("Ada Lovelace <ada@example.com>"))
	assert.False(t, utils.IsEmail("not-an-email"))
	assert.False(t, utils.IsEmail(""))
}
