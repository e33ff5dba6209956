package services

// ImageUpload is a file payload lifted out of a multipart request at the HTTP
// boundary and threaded explicitly into the service call.
type ImageUpload struct {
	Data     []byte
	MimeType string
	FileName string
}
