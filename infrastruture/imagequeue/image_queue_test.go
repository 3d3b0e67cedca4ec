package imagequeue

import (
	"context"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func image(t *testing.T, url, title string) *dmn.Image {
	t.Helper()
	img, err := dmn.NewImage(url, title)
	require.NoError(t, err)
	return img
}

func TestMemoryImageQueue(t *testing.T) {
	ctx := context.Background()
	a := image(t, "https://example.com/a.jpg", "a")
	b := image(t, "https://example.com/b.jpg", "b")

	t.Run("drains in order", func(t *testing.T) {
		q := NewMemoryImageQueue(false, a)
		require.NoError(t, q.Enqueue(ctx, b))
		assert.Equal(t, int64(2), q.Count(ctx))

		got, err := q.NextImage(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, got)
		got, err = q.NextImage(ctx)
		require.NoError(t, err)
		assert.Equal(t, b, got)

		_, err = q.NextImage(ctx)
		assert.ErrorIs(t, err, dmn.ErrImageUnavailable)
	})

	t.Run("cycles", func(t *testing.T) {
		q := NewMemoryImageQueue(true, a, b)
		for i := 0; i < 5; i++ {
			_, err := q.NextImage(ctx)
			require.NoError(t, err)
		}
		assert.Equal(t, int64(2), q.Count(ctx))
	})

	t.Run("respects cancellation", func(t *testing.T) {
		q := NewMemoryImageQueue(true, a)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := q.NextImage(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDecodeEntries(t *testing.T) {
	images, skipped := decodeEntries([]string{
		`{"url":"https://example.com/a.jpg","title":"harbour"}`,
		`not json`,
		`{"url":"ftp://example.com/b.jpg","title":"x"}`,
		`{"url":"https://example.com/c.jpg","title":"  "}`,
	})
	assert.Equal(t, 3, skipped)
	require.Len(t, images, 1)
	assert.Equal(t, "harbour", images[0].Title)

	entries, err := encodeEntries(images)
	require.NoError(t, err)
	back, skipped := decodeEntries([]string{entries[0].(string)})
	assert.Zero(t, skipped)
	assert.Equal(t, images, back)
}

func TestNewRedisImageQueue(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := NewRedisImageQueue(client, "", 4, nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

// TestRedisImageQueue needs a redis server on localhost:6379 and is skipped otherwise.
func TestRedisImageQueue(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	key := "walker:test:" + t.Name()
	require.NoError(t, client.Del(ctx, key).Err())
	defer client.Del(context.Background(), key)

	q, err := NewRedisImageQueue(client, key, 2, nil)
	require.NoError(t, err)

	_, err = q.NextImage(ctx)
	assert.ErrorIs(t, err, dmn.ErrImageUnavailable)

	want := []*dmn.Image{
		image(t, "https://example.com/1.jpg", "one"),
		image(t, "https://example.com/2.jpg", "two"),
		image(t, "https://example.com/3.jpg", "three"),
	}
	require.NoError(t, q.Enqueue(ctx, want...))
	assert.Equal(t, int64(3), q.Count(ctx))

	for _, w := range want {
		got, err := q.NextImage(ctx)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
	assert.Zero(t, q.Count(ctx))
}
