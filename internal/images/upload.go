package images

import (
	"io"
	"mime/multipart"
)

// Upload is one incoming file: the client-supplied name (only its extension
// is kept) and an opener for its content.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FromMultipart adapts multipart file headers to uploads.
func FromMultipart(headers []*multipart.FileHeader) []Upload {
	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		uploads = append(uploads, Upload{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return uploads
}
