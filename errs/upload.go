package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Blob-storage errors. Wrong type and oversize are caught before any network
// call; upload failures come back from the store itself.
var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image too large")
	ErrUploadFailed         = errors.New("image upload failed")
)

func NewUnsupportedImageTypeError(mimeType string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUnsupportedImageType,
		Details:    fmt.Sprintf("got %s, allowed types: %v", mimeType, allowed),
		Field:      "image",
	}
}

func NewImageTooLargeError(size, maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrImageTooLarge,
		Details:    fmt.Sprintf("image is %d bytes, limit is %d bytes", size, maxSize),
		Field:      "image",
	}
}

func NewUploadFailedError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrUploadFailed,
		Cause:      cause,
		Field:      "image",
	}
}

func IsUnsupportedImageType(err error) bool {
	return errors.Is(err, ErrUnsupportedImageType)
}

func IsImageTooLarge(err error) bool {
	return errors.Is(err, ErrImageTooLarge)
}

func IsUploadFailed(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}
