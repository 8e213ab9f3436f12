package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomain(t *testing.T) {
	d, ok := emailDomain("ana@barbearia.com.br")
	assert.True(t, ok)
	assert.Equal(t, "barbearia.com.br", d)

	for _, bad := range []string{"", "ana", "@barbearia.com", "ana@", "ana@localhost"} {
		_, ok := emailDomain(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsEmailDomainValidRejectsMalformedWithoutLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, IsEmailDomainValid(ctx, "sem-arroba"))
}
