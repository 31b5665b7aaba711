package validators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/validators"
)

// só os caminhos que falham antes do DNS; domínios reais dependeriam
// de rede
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"NoAt":            "gestor.example.com",
		"EmptyLocalPart":  "@example.com",
		"TrailingAt":      "gestor@",
		"Empty":           "",
		"LocalHostname":   "morador@localhost",
		"BareDomainLabel": "morador@intranet",
	}

	for name, email := range tests {
		t.Run(name, func(t *testing.T) {
			assert.False(t, validators.IsEmailDomainValid(email))
		})
	}
}
