package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@example.com"))
	assert.True(t, IsValidEmail(" ana@example.com "))
	assert.False(t, IsValidEmail("ana@example"))
	assert.False(t, IsValidEmail("ana example@x.com"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("s3cret!pass"))
	assert.False(t, IsValidPassword("short1!"))
	assert.False(t, IsValidPassword("nodigits!!"))
	assert.False(t, IsValidPassword("nosymbol12"))
}

func TestIsValidFullname(t *testing.T) {
	assert.True(t, IsValidFullname("José María O'Neill-Núñez"))
	assert.True(t, IsValidFullname("Ana & Luis"))
	assert.False(t, IsValidFullname(""))
	assert.False(t, IsValidFullname("R2D2"))
}

func TestParseUUIDs(t *testing.T) {
	ids, err := ParseUUIDs([]string{"550e8400-e29b-41d4-a716-446655440000", " 660e8400-e29b-41d4-a716-446655440000 "})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = ParseUUIDs([]string{"550e8400-e29b-41d4-a716-446655440000", "C"})
	assert.Equal(t, ErrInvalidUUID, err)

	ids, err = ParseUUIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
