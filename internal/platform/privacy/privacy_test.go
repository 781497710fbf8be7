package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := map[string]string{
		"192.168.1.47":                 "192.168.1.0",
		"127.0.0.1":                    "127.0.0.0",
		"2001:db8:85a3::8a2e:370:7334": "2001:0db8:85a3::",
		"::1":                          "0000:0000:0000::",
		"":                             "unknown",
		"unknown":                      "unknown",
		"not-an-ip":                    "invalid",
		"192.168.1.1:8080":             "invalid",
	}
	for in, want := range tests {
		assert.Equal(t, want, AnonymizeIP(in), in)
	}

	assert.Equal(t, AnonymizeIP("10.1.2.3"), AnonymizeIP("10.1.2.200"))
	assert.NotEqual(t, AnonymizeIP("10.1.2.3"), AnonymizeIP("10.1.3.3"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@aluno.ufpe.br", MaskEmail("ana.souza@aluno.ufpe.br"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
}

func TestMaskPostalCode(t *testing.T) {
	assert.Equal(t, "50740-***", MaskPostalCode("50740-560"))
	assert.Equal(t, "01001-***", MaskPostalCode("01001000"))
	assert.Equal(t, "***", MaskPostalCode("12"))
}
