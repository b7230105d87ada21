package services

import (
	"context"
	"testing"
	"time"

	"myapp/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRegistry(t *testing.T) (*RedisGroupRegistry, *miniredis.Miniredis, *HubService) {
	t.Helper()
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	hub := NewHubService()
	t.Cleanup(hub.Stop)
	return NewRedisGroupRegistry(rdb, hub), mr, hub
}

func TestRedisGroupRegistry_MirrorsMembership(t *testing.T) {
	registry, mr, hub := newRedisRegistry(t)
	ctx := context.Background()
	member := &recordingMember{id: "chan-1"}

	require.NoError(t, registry.Add(ctx, models.GroupMetrics, member))

	ok, err := mr.SIsMember("myapp:group:metrics", "chan-1")
	require.NoError(t, err)
	assert.True(t, ok)

	members, err := registry.Members(ctx, models.GroupMetrics)
	require.NoError(t, err)
	assert.Equal(t, []string{"chan-1"}, members)

	local, err := hub.Members(ctx, models.GroupMetrics)
	require.NoError(t, err)
	assert.Equal(t, []string{"chan-1"}, local)

	n, err := registry.Broadcast(ctx, models.GroupMetrics, models.PushMessage{Type: "notice"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, registry.Discard(ctx, models.GroupMetrics, member))
	members, err = registry.Members(ctx, models.GroupMetrics)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRedisGroupRegistry_DiscardWithoutRedis(t *testing.T) {
	registry, mr, hub := newRedisRegistry(t)
	ctx := context.Background()
	member := &recordingMember{id: "chan-2"}
	require.NoError(t, registry.Add(ctx, models.GroupStatus, member))

	mr.Close()

	assert.Error(t, registry.Discard(ctx, models.GroupStatus, member))

	local, err := hub.Members(ctx, models.GroupStatus)
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestPushChannel_WithRedisRegistry(t *testing.T) {
	registry, mr, _ := newRedisRegistry(t)
	sender := newFakeSender()

	ch := NewPushChannel(MetricsChannelSpec(&scriptedProvider{}, 10*time.Millisecond), sender, registry, nil)
	require.NoError(t, ch.Open(context.Background()))
	assert.Equal(t, models.MessageMetricsUpdate, sender.next(t).Type)

	ok, err := mr.SIsMember("myapp:group:metrics", ch.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	ch.Close()
	members, err := registry.Members(context.Background(), models.GroupMetrics)
	require.NoError(t, err)
	assert.Empty(t, members)
}
