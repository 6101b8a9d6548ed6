package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/ElenaBalahnina123/BookDiary/internal/errors"
)

// maxCoverBytes caps cover uploads at 20 MiB.
const maxCoverBytes = 20 << 20

// handleGetImage serves stored image bytes. Image ids are write-once, so the
// response is immutable and cacheable forever.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := s.images.Raw(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	etag := `"` + s.imageETag(id) + `"`
	if etag != `""` {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}

// handleUploadCover attaches a new cover image to a book from the request
// body and returns the updated entry.
func (s *Server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, domainerrors.Validation("invalid book id"))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxCoverBytes)
	defer body.Close()

	book, err := s.services.Book.AttachImage(r.Context(), id, body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := mapBookResponse(book)
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal cover response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write(payload)
}

// writeError maps an error to a JSON error response outside of huma routes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := statusToCode(status)
	message := "internal error"

	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		status = domainErr.HTTPStatus()
		code = string(domainErr.Code)
		message = domainErr.Message
	} else {
		s.logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(&APIError{
		Code:    code,
		Message: message,
	})
	w.Write(payload)
}

// imageETag returns the image hash or "" when it cannot be computed.
func (s *Server) imageETag(id string) string {
	hash, err := s.images.Hash(id)
	if err != nil {
		return ""
	}
	return hash
}
