package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone(" 98765 432-10 "))
	assert.Equal(t, "9876543210", NormalizePhone("9876543210"))
	assert.Equal(t, "9876543210", NormalizePhone("98-76-54-32-10"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.True(t, IsValidPhone("919876543210"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("98765abcde"))
	assert.False(t, IsValidPhone(""))
}

func TestNewReceiptRef(t *testing.T) {
	ref := NewReceiptRef()
	assert.True(t, strings.HasPrefix(ref, "RCPT-"))
	assert.Len(t, ref, 13)
	assert.NotEqual(t, ref, NewReceiptRef())
}
