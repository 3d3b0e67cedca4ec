package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
)

// ImageProvider hands out pictures for walls. It may block, batch or fail;
// dmn.ErrImageUnavailable means "nothing right now".
type ImageProvider interface {
	NextImage(ctx context.Context) (*dmn.Image, error)
}

// ImageQueue is an ImageProvider that can be fed.
type ImageQueue interface {
	ImageProvider
	Enqueue(ctx context.Context, images ...*dmn.Image) error
	Count(ctx context.Context) int64
}
