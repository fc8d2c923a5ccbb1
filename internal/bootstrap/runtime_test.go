package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaultSuffix(t *testing.T) {
	assert.Equal(t, "AUTH_SERVICE", vaultSuffix("auth-service"))
	assert.Equal(t, "RATINGS", vaultSuffix("ratings"))
}
