package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"+14155552671", true},
		{"+1 (415) 555-2671", true},
		{"415 555 2671", true},
		{"+521234567890", true},
		{"", false},
		{"abc", false},
		{"+0123456", false},
		{"+123456789012345678", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidatePhone(tc.phone), "phone %q", tc.phone)
	}
}
