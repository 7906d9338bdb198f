package utils_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

func TestFetchLogo_Success(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	got := utils.FetchLogo(context.Background(), srv.URL)

	require.True(t, got.OK)
	assert.Equal(t, payload, got.Data)
	assert.Equal(t, "PNG", got.Format)
}

func TestFetchLogo_FormatFromURLWhenContentTypeMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	got := utils.FetchLogo(context.Background(), srv.URL+"/logo.jpg")

	require.True(t, got.OK)
	assert.Equal(t, "JPG", got.Format)
}

func TestFetchLogo_EmptyURL(t *testing.T) {
	assert.False(t, utils.FetchLogo(context.Background(), "").OK)
}

func TestFetchLogo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	assert.False(t, utils.FetchLogo(context.Background(), srv.URL).OK)
}

func TestFetchLogo_UnknownFormatRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/gif")
		_, _ = w.Write([]byte("GIF89a"))
	}))
	defer srv.Close()

	assert.False(t, utils.FetchLogo(context.Background(), srv.URL).OK)
}

func TestFetchLogo_UnreachableHost(t *testing.T) {
	assert.False(t, utils.FetchLogo(context.Background(), "http://127.0.0.1:1/logo.png").OK)
}
