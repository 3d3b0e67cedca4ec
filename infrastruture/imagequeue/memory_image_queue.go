package imagequeue

import (
	"context"
	"sync"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/service/i"
)

// MemoryImageQueue is an in-process image queue. With cycle set, handed out images go
// back to the tail so the queue never runs dry once it has one entry.
type MemoryImageQueue struct {
	images []*dmn.Image
	cycle  bool
	sync.Mutex
}

// NewMemoryImageQueue returns a queue seeded with images.
func NewMemoryImageQueue(cycle bool, images ...*dmn.Image) i.ImageQueue {
	return &MemoryImageQueue{images: append([]*dmn.Image(nil), images...), cycle: cycle}
}

// NextImage pops the head of the queue.
func (q *MemoryImageQueue) NextImage(ctx context.Context) (*dmn.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.Lock()
	defer q.Unlock()
	if len(q.images) == 0 {
		return nil, dmn.ErrImageUnavailable
	}
	img := q.images[0]
	q.images = q.images[1:]
	if q.cycle {
		q.images = append(q.images, img)
	}
	return img, nil
}

// Enqueue appends images to the tail.
func (q *MemoryImageQueue) Enqueue(_ context.Context, images ...*dmn.Image) error {
	q.Lock()
	defer q.Unlock()
	q.images = append(q.images, images...)
	return nil
}

// Count returns the number of queued images.
func (q *MemoryImageQueue) Count(context.Context) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.images))
}
