package domain

import (
	"errors"
	"net/url"
	"strings"
)

const maxTitleLength = 200

var (
	// ErrImageUnavailable means the provider has nothing to hand out right now. Callers
	// retry later or leave the wall bare.
	ErrImageUnavailable = errors.New("no image available")
	ErrInvalidImageURL  = errors.New("image url must be absolute http(s)")
	ErrEmptyImageTitle  = errors.New("image title is empty")
)

// Image is a picture to hang on a wall, with the caption shown on its title plate.
type Image struct {
	URL   string `json:"url" bson:"url"`
	Title string `json:"title" bson:"title"`
}

// NewImage validates and returns an Image. Long titles are cut to fit the plate.
func NewImage(rawURL, title string) (*Image, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidImageURL
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyImageTitle
	}
	if r := []rune(title); len(r) > maxTitleLength {
		title = string(r[:maxTitleLength])
	}

	return &Image{URL: u.String(), Title: title}, nil
}
