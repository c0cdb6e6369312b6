package thumbnail

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 20))
	for x := 0; x < 32; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad_RendersRequestedSize(t *testing.T) {
	body := encodedPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	loader := NewLoader(srv.Client(), 8, 3)
	art, err := loader.Load(context.Background(), srv.URL+"/vi/abc123/mqdefault.jpg")
	require.NoError(t, err)

	lines := strings.Split(art, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 8, lipgloss.Width(line))
	}
}

func TestLoad_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.Client(), 8, 3).Load(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestLoad_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not an image"))
	}))
	defer srv.Close()

	_, err := NewLoader(srv.Client(), 8, 3).Load(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestLoad_CancelledContextSkipsDownload(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(srv.Client(), 8, 3).Load(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits)
}

func TestPlaceholder_MatchesThumbnailSize(t *testing.T) {
	loader := NewLoader(nil, 0, 0)

	lines := strings.Split(loader.Placeholder(), "\n")
	require.Len(t, lines, DefaultHeight)
	assert.Equal(t, DefaultWidth, lipgloss.Width(lines[0]))
}

func TestToColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0080"), toColor(color.RGBA{R: 255, G: 0, B: 128, A: 255}))
}
