package blobstore

import (
	"context"
	"io"

	"github.com/nardosm/ik-registry/internal"
)

// Store is the blob-store collaborator: it accepts file bytes and hands
// back a durable URL. Resource services only ever see the URL.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error)
}

// Content types the portal accepts for attachments.
var allowedContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

var errUnsupportedType = internal.NewValidationError(
	"file must be a jpeg, png, gif or pdf", internal.ErrCodeValidationFailed)

var errTooLarge = internal.NewValidationError(
	"file exceeds the maximum allowed size", internal.ErrCodeValidationFailed)
