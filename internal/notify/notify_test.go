package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls atomic.Int32 }

func (f *failingSink) Notify(context.Context, Notification) error {
	f.calls.Add(1)
	return errors.New("broker down")
}

type panickingSink struct{}

func (panickingSink) Notify(context.Context, Notification) error { panic("boom") }

type blockingSink struct{}

func (blockingSink) Notify(ctx context.Context, _ Notification) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRedisSink_Publishes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, "admin:notifications")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := New(KindProviderPending, "New provider", "Jo is waiting for approval", 7)
	require.NoError(t, NewRedisSink(client, "admin:notifications").Notify(ctx, n))

	select {
	case msg := <-sub.Channel():
		var got Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, KindProviderPending, got.Kind)
		assert.Equal(t, uint(7), got.ProviderID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}
}

func TestRedisSink_ErrorWhenBrokerGone(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err := NewRedisSink(client, "c").Notify(context.Background(), New("k", "t", "c", 0))
	assert.Error(t, err)
}

func TestAsync_SwallowsFailures(t *testing.T) {
	sink := &failingSink{}
	a := NewAsync(sink, time.Second)

	assert.NoError(t, a.Notify(context.Background(), New("k", "t", "c", 1)))
	assert.NoError(t, a.Notify(context.Background(), New("k", "t", "c", 2)))
	a.Wait()

	assert.Equal(t, int32(2), sink.calls.Load())
}

func TestAsync_RecoversPanics(t *testing.T) {
	a := NewAsync(panickingSink{}, time.Second)
	assert.NoError(t, a.Notify(context.Background(), New("k", "t", "c", 1)))
	a.Wait()
}

func TestAsync_TimesOut(t *testing.T) {
	a := NewAsync(blockingSink{}, 20*time.Millisecond)
	start := time.Now()
	assert.NoError(t, a.Notify(context.Background(), New("k", "t", "c", 1)))
	a.Wait()
	assert.Less(t, time.Since(start), time.Second)
}

func TestFromConfig_LogSinkWithoutRedis(t *testing.T) {
	a, closeFn := FromConfig(&config.Config{NotifyTimeout: time.Second})
	_, ok := a.sink.(LogSink)
	assert.True(t, ok)
	assert.NoError(t, a.Notify(context.Background(), New("k", "t", "c", 1)))
	assert.NoError(t, closeFn())
}

func TestFromConfig_RedisSink(t *testing.T) {
	mr := miniredis.RunT(t)
	a, closeFn := FromConfig(&config.Config{RedisAddr: mr.Addr(), NotifyChannel: "admin", NotifyTimeout: time.Second})
	_, ok := a.sink.(*RedisSink)
	assert.True(t, ok)
	assert.NoError(t, closeFn())
}
