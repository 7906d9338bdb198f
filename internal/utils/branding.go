package utils

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const logoFetchTimeout = 3 * time.Second

// 2 MB is plenty for a header logo.
const maxLogoBytes = 2 << 20

// LogoResult holds a fetched chapter logo for embedding in documents.
type LogoResult struct {
	Data   []byte
	Format string
	OK     bool
}

// FetchLogo downloads the chapter logo from the given URL. Failures are
// reported via OK=false rather than an error since documents render fine
// without a logo.
func FetchLogo(ctx context.Context, logoURL string) LogoResult {
	if logoURL == "" {
		return LogoResult{}
	}

	ctx, cancel := context.WithTimeout(ctx, logoFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
	if err != nil {
		return LogoResult{}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return LogoResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LogoResult{}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil || len(data) == 0 {
		return LogoResult{}
	}

	format := logoFormat(resp.Header.Get("Content-Type"), logoURL)
	if format == "" {
		return LogoResult{}
	}

	return LogoResult{Data: data, Format: format, OK: true}
}

func logoFormat(contentType, logoURL string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	}
	lower := strings.ToLower(logoURL)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "PNG"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "JPG"
	}
	return ""
}
