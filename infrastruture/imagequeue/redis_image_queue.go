package imagequeue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/beka-birhanu/vinom-walker/config"
	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyKey = errors.New("image queue key is empty")
)

// RedisImageQueue hands out images queued in a redis list. Entries are JSON objects with
// url and title fields. Several walkers may share one list: batches are popped under a
// distributed lock and buffered locally.
type RedisImageQueue struct {
	client    *redis.Client
	locker    *redsync.Redsync
	key       string
	batchSize int64
	logger    *log.Logger

	buffer []*dmn.Image
	sync.Mutex
}

// NewRedisImageQueue initializes a RedisImageQueue on the list at key.
func NewRedisImageQueue(client *redis.Client, key string, batchSize int, logger *log.Logger) (i.ImageQueue, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	queue := &RedisImageQueue{
		client:    client,
		key:       key,
		batchSize: int64(batchSize),
		logger:    logger,
	}
	pool := goredis.NewPool(client)
	queue.locker = redsync.New(pool)
	return queue, nil
}

// NextImage returns the next queued image, refilling the local buffer from redis when it
// runs dry. An empty list yields dmn.ErrImageUnavailable.
func (q *RedisImageQueue) NextImage(ctx context.Context) (*dmn.Image, error) {
	q.Lock()
	defer q.Unlock()

	if len(q.buffer) == 0 {
		images, err := q.popBatch(ctx)
		if err != nil {
			return nil, err
		}
		q.buffer = images
	}
	if len(q.buffer) == 0 {
		return nil, dmn.ErrImageUnavailable
	}

	img := q.buffer[0]
	q.buffer = q.buffer[1:]
	return img, nil
}

// Enqueue appends images to the tail of the list.
func (q *RedisImageQueue) Enqueue(ctx context.Context, images ...*dmn.Image) error {
	if len(images) == 0 {
		return nil
	}
	entries, err := encodeEntries(images)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.key, entries...).Err()
}

// Count returns the number of images waiting in redis.
func (q *RedisImageQueue) Count(ctx context.Context) int64 {
	return q.client.LLen(ctx, q.key).Val()
}

// popBatch removes up to batchSize entries from the head of the list.
func (q *RedisImageQueue) popBatch(ctx context.Context) ([]*dmn.Image, error) {
	mutex := q.locker.NewMutex(q.key + ":pop_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	var head *redis.StringSliceCmd
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		head = pipe.LRange(ctx, q.key, 0, q.batchSize-1)
		pipe.LTrim(ctx, q.key, q.batchSize, -1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	images, skipped := decodeEntries(head.Val())
	if skipped > 0 && q.logger != nil {
		q.logger.Printf("%s[ERROR]%s dropped %d malformed entries from %s", config.LogErrorColor, config.LogColorReset, skipped, q.key)
	}
	return images, nil
}

func encodeEntries(images []*dmn.Image) ([]interface{}, error) {
	entries := make([]interface{}, 0, len(images))
	for _, img := range images {
		raw, err := json.Marshal(img)
		if err != nil {
			return nil, err
		}
		entries = append(entries, string(raw))
	}
	return entries, nil
}

// decodeEntries parses list entries, skipping any that are not valid images.
func decodeEntries(entries []string) ([]*dmn.Image, int) {
	images := make([]*dmn.Image, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		var raw dmn.Image
		if err := json.Unmarshal([]byte(e), &raw); err != nil {
			skipped++
			continue
		}
		img, err := dmn.NewImage(raw.URL, raw.Title)
		if err != nil {
			skipped++
			continue
		}
		images = append(images, img)
	}
	return images, skipped
}
