package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataworks/cata-api/internal/catalog"
	"github.com/cataworks/cata-api/internal/domain/model"
)

// stubImages records lookups and never returns an image.
type stubImages struct {
	urls []string
}

func (s *stubImages) Get(_ context.Context, url string) *catalog.CachedImage {
	if url == "" {
		return nil
	}
	s.urls = append(s.urls, url)
	return nil
}

func newTestRenderer(t *testing.T) (*Renderer, *stubImages) {
	t.Helper()
	images := &stubImages{}
	r, err := NewRenderer(RendererOptions{Images: images})
	require.NoError(t, err)
	return r, images
}

func requirePDF(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF"), "output is not a PDF")
	return data
}

func TestRenderEmptyCatalog(t *testing.T) {
	r, _ := newTestRenderer(t)
	out := filepath.Join(t.TempDir(), "empty.pdf")

	err := r.Render(context.Background(), Document{
		Products:   nil,
		WhatsApp:   "+57 300 123 4567",
		OutputPath: out,
	})
	require.NoError(t, err)
	requirePDF(t, out)
}

func TestRenderSingleProduct(t *testing.T) {
	r, images := newTestRenderer(t)
	out := filepath.Join(t.TempDir(), "one.pdf")
	price := 2500.0

	err := r.Render(context.Background(), Document{
		Products: []model.Product{
			{Category: "Drinks", Name: "Cola 600ml", Price: &price},
		},
		WhatsApp:   "+57 300 123 4567",
		OutputPath: out,
	})
	require.NoError(t, err)

	data := string(requirePDF(t, out))
	// The card link must target the digits-only contact, carry the encoded
	// product name and grouped price, and no image slot was requested.
	assert.Contains(t, data, "https://wa.me/573001234567?text=")
	assert.Contains(t, data, "Cola%20600ml")
	assert.Contains(t, data, "%242%2C500")
	assert.Empty(t, images.urls)
}

func TestRenderRequestsImagesOncePerURL(t *testing.T) {
	r, images := newTestRenderer(t)

	products := []model.Product{
		{Category: "Drinks", Name: "Cola", ImageURL: "http://img/cola.png"},
		{Category: "Drinks", Name: "Water"},
		{Category: "Snacks", Name: "Chips", ImageURL: "http://img/chips.png"},
	}
	err := r.Render(context.Background(), Document{
		Products:   products,
		WhatsApp:   "573001234567",
		OutputPath: filepath.Join(t.TempDir(), "imgs.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://img/cola.png", "http://img/chips.png"}, images.urls)
}

func TestRenderManyProductsPaginates(t *testing.T) {
	r, _ := newTestRenderer(t)
	out := filepath.Join(t.TempDir(), "many.pdf")

	var products []model.Product
	for i := 0; i < 12; i++ {
		products = append(products, model.Product{Category: "Drinks", Name: "Item"})
	}
	err := r.Render(context.Background(), Document{
		Products:   products,
		WhatsApp:   "573001234567",
		OutputPath: out,
	})
	require.NoError(t, err)

	// 12 cards at ~50mm each cannot fit on a single body page.
	small := renderedSize(t, r, products[:1])
	big, err2 := os.Stat(out)
	require.NoError(t, err2)
	assert.Greater(t, big.Size(), small)
}

func renderedSize(t *testing.T, r *Renderer, products []model.Product) int64 {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.pdf")
	require.NoError(t, r.Render(context.Background(), Document{
		Products:   products,
		WhatsApp:   "573001234567",
		OutputPath: path,
	}))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	return fi.Size()
}

func TestRenderWatermarkWithoutLogoStillSucceeds(t *testing.T) {
	r, _ := newTestRenderer(t)
	out := filepath.Join(t.TempDir(), "wm.pdf")

	err := r.Render(context.Background(), Document{
		Products:   []model.Product{{Category: "Drinks", Name: "Cola"}},
		LogoPath:   filepath.Join(t.TempDir(), "missing-logo.png"),
		WhatsApp:   "573001234567",
		Watermark:  true,
		OutputPath: out,
	})
	require.NoError(t, err)
	requirePDF(t, out)
}

func TestRenderFailsOnUnwritableOutput(t *testing.T) {
	r, _ := newTestRenderer(t)

	err := r.Render(context.Background(), Document{
		Products:   nil,
		WhatsApp:   "573001234567",
		OutputPath: filepath.Join(t.TempDir(), "no-such-dir", "out.pdf"),
	})
	require.Error(t, err)
}

func TestTruncateName(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := truncateName(long)
	assert.Len(t, []rune(got), nameMaxRunes)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "Cola 600ml"
	assert.Equal(t, short, truncateName(short))

	exact := strings.Repeat("b", nameMaxRunes)
	assert.Equal(t, exact, truncateName(exact))
}

func TestFitBox(t *testing.T) {
	w, h := fitBox(400, 200, 32)
	assert.InDelta(t, 32, w, 0.001)
	assert.InDelta(t, 16, h, 0.001)

	w, h = fitBox(100, 400, 32)
	assert.InDelta(t, 8, w, 0.001)
	assert.InDelta(t, 32, h, 0.001)

	w, h = fitBox(0, 0, 32)
	assert.InDelta(t, 32, w, 0.001)
	assert.InDelta(t, 32, h, 0.001)
}
