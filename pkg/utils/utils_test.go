package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		want    int
	}{
		{"exact fit", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"single partial page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"zero per page", 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CalculateTotalPages(tt.total, tt.perPage))
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, CalculateOffset(1, 10))
	require.Equal(t, 10, CalculateOffset(2, 10))
	require.Equal(t, 0, CalculateOffset(0, 10))
}

func TestGenerateConfirmationCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateConfirmationCode()
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestParseInt(t *testing.T) {
	require.Equal(t, 5, ParseInt("5", 1))
	require.Equal(t, 1, ParseInt("", 1))
	require.Equal(t, 1, ParseInt("abc", 1))
	require.Equal(t, 1, ParseInt("-2", 1))
}

func TestHashSecret_RoundTrip(t *testing.T) {
	hash, err := HashSecret("493817")
	require.NoError(t, err)
	require.NotEqual(t, "493817", hash)

	require.True(t, CheckSecretHash("493817", hash))
	require.False(t, CheckSecretHash("493818", hash))
}

func TestValidateStruct_CustomTags(t *testing.T) {
	type payload struct {
		Username string `validate:"required,username"`
		Slug     string `validate:"required,slug"`
	}

	require.Empty(t, ValidateStruct(payload{Username: "reader", Slug: "books"}))

	errs := ValidateStruct(payload{Username: "me", Slug: "books"})
	require.Contains(t, errs, "Username")

	errs = ValidateStruct(payload{Username: "reader", Slug: "no spaces"})
	require.Contains(t, errs, "Slug")
}
