package baseline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objguard/finding"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "state", "baseline.db")
	store, err := Open(location)
	require.NoError(t, err)

	known := &finding.Finding{RuleID: "no-object-update", Path: "a.js", Line: 3, Message: "m", Fingerprint: "0000000000000001"}
	fresh := &finding.Finding{RuleID: "no-object-update", Path: "a.js", Line: 9, Message: "m", Fingerprint: "0000000000000002"}

	filtered, err := store.Filter(ctx, []*finding.Finding{known, fresh})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	require.NoError(t, store.Record(ctx, []*finding.Finding{known}))
	require.NoError(t, store.Record(ctx, []*finding.Finding{known}))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	filtered, err = store.Filter(ctx, []*finding.Finding{known, fresh})
	require.NoError(t, err)
	assert.Equal(t, []*finding.Finding{fresh}, filtered)
	require.NoError(t, store.Close())

	store, err = Open(location)
	require.NoError(t, err)
	defer store.Close()
	filtered, err = store.Filter(ctx, []*finding.Finding{known})
	require.NoError(t, err)
	assert.Empty(t, filtered, "baseline persists across runs")

	require.NoError(t, store.Record(ctx, []*finding.Finding{fresh}))
	pruned, err := store.Prune(ctx, "a.js", []*finding.Finding{fresh})
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
