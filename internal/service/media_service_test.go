package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

type recordingStore struct {
	url     string
	putKeys []string
	deleted []string
}

func (m *recordingStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	m.putKeys = append(m.putKeys, key)
	return m.url, nil
}

func (m *recordingStore) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func fileHeader(t *testing.T, name string, payload []byte) *multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestMediaServiceUploadAcceptsPNG(t *testing.T) {
	store := &recordingStore{url: "https://cdn.example.com/uploads/x.png"}
	service := NewMediaService(store, nil, MediaConfig{UploadDir: "uploads"}, nil)

	result, err := service.Upload(context.Background(), fileHeader(t, "photo.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.MIMEType)
	assert.Equal(t, "https://cdn.example.com/uploads/x.png", result.URL)
	assert.Regexp(t, regexp.MustCompile(`^uploads/\d{13}-[0-9a-f]{8}\.png$`), result.Key)
}

func TestMediaServiceUploadRejectsSniffedType(t *testing.T) {
	store := &recordingStore{}
	service := NewMediaService(store, nil, MediaConfig{}, nil)

	// Declared as .png but the payload is plain text.
	_, err := service.Upload(context.Background(), fileHeader(t, "script.png", []byte("#!/bin/sh\nrm -rf /")))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.putKeys)
}

func TestMediaServiceUploadRejectsOversize(t *testing.T) {
	store := &recordingStore{}
	service := NewMediaService(store, nil, MediaConfig{MaxBytes: 16}, nil)

	payload := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	_, err := service.Upload(context.Background(), fileHeader(t, "big.png", payload))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.putKeys)
}

func TestMediaServiceRemoveRequiresKey(t *testing.T) {
	store := &recordingStore{}
	service := NewMediaService(store, nil, MediaConfig{}, nil)

	require.Error(t, service.Remove(context.Background(), ""))
	require.NoError(t, service.Remove(context.Background(), "uploads/old.png"))
	assert.Equal(t, []string{"uploads/old.png"}, store.deleted)
}

func TestMediaServiceRemoveRejectsTraversalKeys(t *testing.T) {
	store := &recordingStore{}
	service := NewMediaService(store, nil, MediaConfig{}, nil)

	for _, key := range []string{"../etc/passwd", "uploads/../../secret", "/etc/passwd", "uploads/./x.png", "a\\b.png"} {
		err := service.Remove(context.Background(), key)
		require.Error(t, err, key)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, store.deleted)
}
