package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "unibus/pkg/platform/audit"
)

func TestStoreAppendsLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "audit.log")

	s, err := Open(path)
	require.NoError(t, err)

	postal := audit.NewEntry(ctx, audit.CategoryPostalCheck, map[string]string{"cep": "00000-000"}, false, "postal code not found")
	require.NoError(t, s.Append(ctx, postal))
	require.NoError(t, s.Close())

	// reopening must append, not truncate
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	elig := audit.NewEntry(ctx, audit.CategoryEligibilityCheck, map[string]string{"email": "a@aluno.br"}, true, "eligible")
	require.NoError(t, s.Append(ctx, elig))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	entries, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, postal.ID, entries[0].ID)
	assert.Equal(t, audit.CategoryEligibilityCheck, entries[1].Category)

	first, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first, 1)
}

func TestStoreAppendAfterClose(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	err = s.Append(context.Background(), audit.Entry{})
	assert.Error(t, err)
}

func TestOpenFailsOnMissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "audit.log"))
	assert.Error(t, err)
}
