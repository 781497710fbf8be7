package validation

import (
	"testing"

	dErrors "unibus/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enrollment struct {
	FullName   string `validate:"required,notblank,max=200"`
	Email      string `validate:"required,email"`
	PostalCode string `validate:"required,cep"`
	Seats      int    `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	valid := enrollment{FullName: "Ana Souza", Email: "ana@aluno.ufpe.br", PostalCode: "50740-560"}

	t.Run("valid struct", func(t *testing.T) {
		require.NoError(t, Validate(valid))
	})

	tests := []struct {
		name    string
		mutate  func(e *enrollment)
		message string
	}{
		{"missing name", func(e *enrollment) { e.FullName = "" }, "full_name is required"},
		{"blank name", func(e *enrollment) { e.FullName = "   " }, "full_name must not be blank"},
		{"bad email", func(e *enrollment) { e.Email = "ana" }, "email must be a valid email"},
		{"bad postal code", func(e *enrollment) { e.PostalCode = "5074-0560" }, "postal_code must have the format 00000-000"},
		{"negative seats", func(e *enrollment) { e.Seats = -1 }, "seats must be greater than or equal to 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := Validate(e)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestIsPostalCode(t *testing.T) {
	for _, ok := range []string{"50740-560", "50740560"} {
		assert.True(t, IsPostalCode(ok), ok)
	}
	for _, bad := range []string{"5074056", "50740-56a", "507405600", "50.740-560", ""} {
		assert.False(t, IsPostalCode(bad), bad)
	}
}

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"50740-560", "50740560"},
		{"50.740-560", "50740560"},
		{" 50740 560 ", "50740560"},
		{"50740560", "50740560"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			once := NormalizePostalCode(tt.raw)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, NormalizePostalCode(once), "normalizing twice must not change the result")
		})
	}
}

func TestIsNormalizedPostalCode(t *testing.T) {
	assert.True(t, IsNormalizedPostalCode("50740560"))
	for _, bad := range []string{"5074056", "507405600", "50740-56", "5074056a", "５0740560", ""} {
		assert.False(t, IsNormalizedPostalCode(bad), bad)
	}
}
