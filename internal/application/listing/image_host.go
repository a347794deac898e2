package listing

import (
	"context"
	"io"

	"github.com/homefinder/backend/internal/domain/listing"
)

// MaxImageSize is the default per-file upload limit (10 MiB), matching storage.max_file_size
const MaxImageSize int64 = 10 << 20

// AllowedImageTypes are the accepted image content types
var AllowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ImageFile is one uploaded image as received from the client
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageHost stores listing images outside the database.
// This interface is implemented by the infrastructure layer (S3 or a local stub).
type ImageHost interface {
	// Upload stores the file and returns its public URL and asset ID
	Upload(ctx context.Context, file ImageFile) (listing.ImageRef, error)
	// Delete removes the asset; deleting a missing asset is not an error
	Delete(ctx context.Context, publicID string) error
}
