package validators

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("audio file is too large")
	ErrFileTypeUnsupported = errors.New("unsupported audio file type")
	ErrNoFile              = errors.New("no audio file provided")
)

// AudioFileValidator checks an uploaded voice sample against the allowed
// mime types and size limit. The int is the HTTP status to reply with
// when validation fails.
func AudioFileValidator(fh *multipart.FileHeader) (int, error) {
	if fh == nil {
		return http.StatusBadRequest, ErrNoFile
	}

	// Check headers first which is easy to spoof, but faster for legit clients
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "audio/") {
		return http.StatusBadRequest, ErrFileTypeUnsupported
	}

	maxFileSize := viper.GetInt64("upload.max_size")
	if fh.Size > maxFileSize {
		return http.StatusRequestEntityTooLarge, ErrFileTooLarge
	}

	// And now do the checks on the actual file to avoid
	// malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, err
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return http.StatusInternalServerError, err
	}

	for _, t := range viper.GetStringSlice("upload.allowed_types") {
		if mime.Is(t) {
			return 0, nil
		}
	}

	return http.StatusBadRequest, ErrFileTypeUnsupported
}
