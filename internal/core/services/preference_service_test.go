package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memorykv "github.com/vncsmyrnk/pollview/internal/adapters/persistence/memory"
)

func TestPreferenceRoundTrip(t *testing.T) {
	kv := memorykv.NewStore()
	service := NewPreferenceService(kv, nil)
	ctx := context.Background()

	require.NoError(t, service.SetExpand(ctx, "sarahedo", "q1", true))
	require.NoError(t, service.SetExpand(ctx, "sarahedo", "q2", false))

	prefs, err := service.Expand(ctx, "sarahedo")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"q1": true, "q2": false}, prefs)
}

func TestPreferenceScopedPerUser(t *testing.T) {
	kv := memorykv.NewStore()
	service := NewPreferenceService(kv, nil)
	ctx := context.Background()

	require.NoError(t, service.SetExpand(ctx, "sarahedo", "q1", true))

	prefs, err := service.Expand(ctx, "tylermcginnis")
	require.NoError(t, err)
	assert.Empty(t, prefs, "flags never leak between identities")
}

func TestPreferenceAnonymousNoop(t *testing.T) {
	kv := memorykv.NewStore()
	service := NewPreferenceService(kv, nil)
	ctx := context.Background()

	require.NoError(t, service.SetExpand(ctx, "", "q1", true))

	prefs, err := service.Expand(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestPreferenceCorruptPayloadTreatedAsEmpty(t *testing.T) {
	kv := memorykv.NewStore()
	service := NewPreferenceService(kv, nil)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "pollprefs:sarahedo", "{not json"))

	prefs, err := service.Expand(ctx, "sarahedo")
	require.NoError(t, err)
	assert.Empty(t, prefs)
}
