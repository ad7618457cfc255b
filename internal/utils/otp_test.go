package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_FiveDigits(t *testing.T) {
	for range 1000 {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 10000)
		assert.LessOrEqual(t, code, 99999)
	}
}
