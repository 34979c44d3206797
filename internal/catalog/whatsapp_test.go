package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIsPure(t *testing.T) {
	b := NewLinkBuilder()
	price := 2500.0

	first := b.Link("Cola 600ml", &price, "+57 300 123 4567")
	second := b.Link("Cola 600ml", &price, "+57 300 123 4567")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, b.Len())
}

func TestLinkContactDigitsOnly(t *testing.T) {
	b := NewLinkBuilder()
	price := 2500.0

	link := b.Link("Cola 600ml", &price, "+57 300 123 4567")
	require.True(t, strings.HasPrefix(link, "https://wa.me/573001234567?text="), link)
	assert.Contains(t, link, "Cola%20600ml")
	// "$2,500" percent-encoded
	assert.Contains(t, link, "%242%2C500")
}

func TestLinkChangingContactOnlyChangesDigits(t *testing.T) {
	b := NewLinkBuilder()
	price := 2500.0

	a := b.Link("Cola 600ml", &price, "573001234567")
	c := b.Link("Cola 600ml", &price, "49301112222")

	aMsg := strings.SplitN(a, "?text=", 2)[1]
	cMsg := strings.SplitN(c, "?text=", 2)[1]
	assert.Equal(t, aMsg, cMsg)
	assert.NotEqual(t, a, c)
}

func TestLinkPriceToggling(t *testing.T) {
	b := NewLinkBuilder()
	price := 2500.0

	with := b.Link("Cola 600ml", &price, "573001234567")
	without := b.Link("Cola 600ml", nil, "573001234567")

	assert.Contains(t, with, "Precio")
	assert.NotContains(t, without, "Precio")
	assert.Equal(t, 2, b.Len())
}

func TestOrderMessageTemplate(t *testing.T) {
	price := 2500.0
	msg := orderMessage("Cola 600ml", &price)
	want := "Hola, quiero este producto desde el catálogo:\n\n• Cola 600ml\nPrecio: $2,500\n\n¿Está disponible?"
	assert.Equal(t, want, msg)
}

func TestEscapeMessageUsesPercentTwenty(t *testing.T) {
	got := escapeMessage("a b\nc")
	assert.Equal(t, "a%20b%0Ac", got)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$2,500", FormatPrice(2500))
	assert.Equal(t, "$999", FormatPrice(999))
	assert.Equal(t, "$1,250,000", FormatPrice(1250000))
}
