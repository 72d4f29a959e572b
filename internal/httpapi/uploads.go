package httpapi

import (
	"net/http"
	"strings"

	"carlot/internal/upload"
)

const maxUploadSize = 10 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		writeError(w, r, upload.ErrDisabled)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		badRequest(w, "file must be an image")
		return
	}

	result, err := s.uploader.Upload(r.Context(), upload.File{
		Name:        header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
