package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"askbm-backend/utils"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+919876543210",
		"9876543210",
		"+1 (555) 010-1234",
	}
	for _, p := range valid {
		assert.True(t, utils.ValidatePhone(p), p)
	}

	invalid := []string{
		"",
		"abc",
		"0123456",
		"+",
	}
	for _, p := range invalid {
		assert.False(t, utils.ValidatePhone(p), p)
	}
}

func TestValidateDate(t *testing.T) {
	assert.True(t, utils.ValidateDate("2026-08-30"))
	assert.False(t, utils.ValidateDate("30-08-2026"))
	assert.False(t, utils.ValidateDate("2026-13-01"))
	assert.False(t, utils.ValidateDate(""))
}

func TestValidateClockTime(t *testing.T) {
	assert.True(t, utils.ValidateClockTime("09:30"))
	assert.True(t, utils.ValidateClockTime("23:59"))
	assert.False(t, utils.ValidateClockTime("24:00"))
	assert.False(t, utils.ValidateClockTime("9:3"))
	assert.False(t, utils.ValidateClockTime(""))
}

func TestGenerateRandomString(t *testing.T) {
	a := utils.GenerateRandomString(6)
	b := utils.GenerateRandomString(6)
	assert.Len(t, a, 6)
	assert.Len(t, b, 6)
	assert.NotEqual(t, a, b)
}
