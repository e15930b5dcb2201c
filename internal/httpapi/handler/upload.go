package handler

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errMissingFile  = errors.New("request must carry a 'file' form field")
	errFileTooLarge = errors.New("file exceeds the upload size limit")
	errNotAnImage   = errors.New("only image uploads are accepted")
)

// openImageUpload pulls the "file" field out of a multipart request and
// checks size and content type before anything is streamed to storage.
func openImageUpload(c *gin.Context, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, errMissingFile
	}

	if header.Size > maxBytes {
		return nil, nil, errFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, errNotAnImage
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return file, header, nil
}
