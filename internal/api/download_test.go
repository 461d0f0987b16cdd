package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	var gotAccept, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7"))
	}, &fakeAuth{token: "tok"})

	blob, err := c.CV().Export(context.Background(), "cv-1", "pdf")
	require.NoError(t, err)

	assert.Equal(t, "*/*", gotAccept)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, []byte("%PDF-1.7"), blob.Data)
	assert.Equal(t, "resume.pdf", blob.Filename)
	assert.Equal(t, ".pdf", blob.Extension())
}

func TestDownload_ErrorIsNormalised(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, auth)

	_, err := c.Users().ExportData(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(1), auth.unauthorized.Load())
}

func TestBlobSave(t *testing.T) {
	dir := t.TempDir()

	t.Run("server name wins", func(t *testing.T) {
		b := &Blob{Data: []byte("a"), Filename: "letter.docx"}
		path, err := b.Save(dir, "fallback.docx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "letter.docx"), path)
	})

	t.Run("fallback", func(t *testing.T) {
		b := &Blob{Data: []byte("b")}
		path, err := b.Save(dir, "cv.pdf")
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "b", string(data))
	})

	t.Run("path traversal stripped", func(t *testing.T) {
		b := &Blob{Data: []byte("c"), Filename: "../../etc/passwd"}
		path, err := b.Save(dir, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "passwd"), path)
	})

	t.Run("no name", func(t *testing.T) {
		_, err := (&Blob{}).Save(dir, "")
		assert.Error(t, err)
	})
}

func TestFilenameFromDisposition(t *testing.T) {
	assert.Equal(t, "", filenameFromDisposition(""))
	assert.Equal(t, "", filenameFromDisposition("attachment"))
	assert.Equal(t, "a b.pdf", filenameFromDisposition(`attachment; filename="a b.pdf"`))
	assert.Equal(t, "", filenameFromDisposition("garbage;;="))
}
