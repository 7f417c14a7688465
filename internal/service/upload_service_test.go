package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "atelier/internal/errors"
)

func multipartImage(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func TestUploadService_SaveImage(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir, 5*1024*1024)
	require.NoError(t, err)

	t.Run("stores a valid png", func(t *testing.T) {
		header := multipartImage(t, "team.png", "image/png", 128)

		path, err := svc.SaveImage(header)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "/uploads/"))
		assert.True(t, strings.HasSuffix(path, ".png"))

		stored := filepath.Join(dir, filepath.Base(path))
		info, err := os.Stat(stored)
		require.NoError(t, err)
		assert.Equal(t, int64(128), info.Size())
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		header := multipartImage(t, "resume.pdf", "application/pdf", 128)

		_, err := svc.SaveImage(header)
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("rejects content type that does not match extension", func(t *testing.T) {
		header := multipartImage(t, "sneaky.png", "application/octet-stream", 128)

		_, err := svc.SaveImage(header)
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("rejects oversize file", func(t *testing.T) {
		small, err := NewUploadService(t.TempDir(), 64)
		require.NoError(t, err)

		header := multipartImage(t, "big.jpg", "image/jpeg", 128)

		_, err = small.SaveImage(header)
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	})
}
