package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "legatia/pkg/domain-errors"
)

func TestName(t *testing.T) {
	for _, valid := range []string{"John Doe", "Mary O'Connor", "Jean-Pierre", "Dr. Smith", "Zoë Ångström"} {
		got, err := Name("  "+valid+" ", "full_name")
		require.NoError(t, err, valid)
		assert.Equal(t, valid, got)
	}

	for _, invalid := range []string{"", "   ", "John<script>", strings.Repeat("a", 101)} {
		_, err := Name(invalid, "full_name")
		require.Error(t, err, invalid)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestSearchQuery(t *testing.T) {
	for _, valid := range []string{"john", "john doe", "john@example.com", "j_d"} {
		_, err := SearchQuery(valid)
		assert.NoError(t, err, valid)
	}
	for _, invalid := range []string{"", "j", strings.Repeat("a", 51), "john<script>"} {
		_, err := SearchQuery(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestMessageAndReason(t *testing.T) {
	_, err := Message("Welcome to the family! See you at 5pm & bring #photos")
	assert.NoError(t, err)
	_, err = Message(strings.Repeat("x", 1001))
	assert.Error(t, err)

	_, err = Reason("", "relationship_to_admin")
	assert.Error(t, err, "reason is required")
	got, err := Reason(" cousin ", "relationship_to_admin")
	require.NoError(t, err)
	assert.Equal(t, "cousin", got)
	_, err = Reason("cousin @home", "relationship_to_admin")
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	got, err := Date("1990-05-01", "birthday")
	require.NoError(t, err)
	assert.Equal(t, "1990-05-01", got)

	got, err = Date("", "birthday")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Date("01/05/1990", "birthday")
	assert.Error(t, err)
}
