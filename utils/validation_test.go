package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"john@example.com",
		"jane.smith@example.co.uk",
		"guest+tag@hotel",
		"a_b-c.d@x",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"@missing-local.com",
		"spaces in@local.com",
		"john@",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidateGuestInput(t *testing.T) {
	assert.NoError(t, ValidateGuestInput("John Doe", "john@example.com"))
	assert.Error(t, ValidateGuestInput("", "john@example.com"))
	assert.Error(t, ValidateGuestInput("John Doe", ""))
	assert.Error(t, ValidateGuestInput("John Doe", "not-an-email"))
}
