package thumbnail

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
	"golang.org/x/time/rate"
)

const (
	DefaultWidth  = 16
	DefaultHeight = 5

	halfBlock = "▀"

	// downloads por segundo e rajada inicial (uma tela cheia de linhas)
	downloadsPerSecond = 8
	downloadBurst      = 6
)

var placeholderColor = lipgloss.Color("62")

type Loader struct {
	client  *http.Client
	limiter *rate.Limiter
	width   int
	height  int
}

// NewLoader desenha miniaturas com width colunas e height linhas; cada
// linha do terminal mostra dois pixels usando meio bloco.
func NewLoader(client *http.Client, width, height int) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	return &Loader{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(downloadsPerSecond), downloadBurst),
		width:   width,
		height:  height,
	}
}

func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("error while waiting to download thumbnail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error while building thumbnail request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error while downloading thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error while downloading thumbnail: status %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error while decoding thumbnail: %w", err)
	}

	return l.Render(img), nil
}

func (l *Loader) Render(img image.Image) string {
	scaled := resize.Resize(uint(l.width), uint(l.height*2), img, resize.Bilinear)
	bounds := scaled.Bounds()

	var b strings.Builder
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			top := scaled.At(bounds.Min.X+x, bounds.Min.Y+2*y)
			bottom := scaled.At(bounds.Min.X+x, bounds.Min.Y+2*y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(toColor(top)).
				Background(toColor(bottom)).
				Render(halfBlock))
		}
		if y < l.height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Placeholder ocupa o mesmo espaço da miniatura enquanto ela carrega.
func (l *Loader) Placeholder() string {
	line := lipgloss.NewStyle().Foreground(placeholderColor).Render(strings.Repeat("█", l.width))
	lines := make([]string, l.height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func toColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
