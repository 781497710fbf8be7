package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "unibus/pkg/platform/audit"
)

func TestStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Append(ctx, audit.Entry{Category: audit.CategoryPostalCheck, Detail: "first"}))
	require.NoError(t, s.Append(ctx, audit.Entry{Category: audit.CategoryEligibilityCheck, Detail: "second"}))

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Detail)
	assert.Equal(t, "second", all[1].Detail)

	limited, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	limited[0].Detail = "mutated"
	again, _ := s.List(ctx, 0)
	assert.Equal(t, "first", again[0].Detail)
}

func TestStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, audit.Entry{Category: audit.CategoryPostalCheck})
		}()
	}
	wg.Wait()

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
