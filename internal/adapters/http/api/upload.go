package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
)

const fileField = "file"

// uploader reads size-capped multipart uploads.
type uploader struct {
	maxBytes int64
}

// upload is one file taken from a multipart form.
type upload struct {
	Filename string
	Data     []byte
}

// read parses the multipart form of r and returns the "file" part. The
// remaining form values stay available through r.FormValue.
func (u uploader) read(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	if err := r.ParseMultipartForm(u.maxBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	f, hdr, err := r.FormFile(fileField)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &upload{Filename: filepath.Base(hdr.Filename), Data: data}, nil
}
