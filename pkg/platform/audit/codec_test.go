package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWireFormat(t *testing.T) {
	e := NewEntry(context.Background(), CategoryEligibilityCheck,
		map[string]string{"email": "ana@aluno.ufpe.br"}, true,
		"eligibility service unavailable, accepted by default")

	data, err := Encode(e)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")
	assert.Contains(t, string(data), `"category":"eligibility_check"`)
	assert.Contains(t, string(data), `"outcome":true`)
	assert.NotContains(t, string(data), "request_id")

	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, e.ID, back.ID)
	assert.True(t, e.Timestamp.Equal(back.Timestamp))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`{"id":"not-a-uuid"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{`))
	assert.Error(t, err)
}
