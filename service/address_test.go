package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFormatting(t *testing.T) {
	addr := Address{Host: "127.0.0.1", Port: 8888}
	assert.Equal(t, "127.0.0.1:8888", addr.HostPort())
	assert.Equal(t, "http://127.0.0.1:8888", addr.BaseURL())
	assert.Equal(t, "127.0.0.1:8888", addr.String())
}

func TestAddressFormattingIPV6(t *testing.T) {
	addr := Address{Host: "::1", Port: 8888}
	assert.Equal(t, "[::1]:8888", addr.HostPort())
	assert.Equal(t, "http://[::1]:8888", addr.BaseURL())
}
