package sessionapi

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
)

// ImageController feeds the image queue sessions hang pictures from.
type ImageController struct {
	queue i.ImageQueue
}

// NewImageController initializes an ImageController.
func NewImageController(q i.ImageQueue) (*ImageController, error) {
	if q == nil {
		return nil, errors.New("image controller needs a queue")
	}
	return &ImageController{queue: q}, nil
}

// Register registers the image routes.
func (ic *ImageController) Register(route *gin.RouterGroup) {
	images := route.Group("/images")
	{
		images.POST("", ic.enqueue)
		images.GET("/count", ic.count)
	}
}

func (ic *ImageController) enqueue(ctx *gin.Context) {
	var request EnqueueImagesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	images := make([]*dmn.Image, 0, len(request.Images))
	for _, r := range request.Images {
		img, err := dmn.NewImage(r.URL, r.Title)
		if err != nil {
			respondError(ctx, err)
			return
		}
		images = append(images, img)
	}

	if err := ic.queue.Enqueue(ctx, images...); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while queueing images"})
		return
	}
	ctx.JSON(http.StatusAccepted, &QueueResponse{Queued: ic.queue.Count(ctx)})
}

func (ic *ImageController) count(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &QueueResponse{Queued: ic.queue.Count(ctx)})
}
