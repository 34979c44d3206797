package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cataworks/cata-api/internal/domain/model"
)

const waLinkPrefix = "https://wa.me/"

// priceFmt renders prices with digit grouping ("$2,500").
var priceFmt = message.NewPrinter(language.English)

// FormatPrice renders a price the way it appears in documents and messages.
func FormatPrice(price float64) string {
	return priceFmt.Sprintf("$%.0f", price)
}

// LinkBuilder builds WhatsApp deep links with a pre-filled order message.
// Links are memoized by (product, price, normalized contact) for the life of
// the process; building a link is otherwise a pure function of its inputs.
type LinkBuilder struct {
	mu    sync.Mutex
	links map[string]string
}

// NewLinkBuilder constructs a LinkBuilder.
func NewLinkBuilder() *LinkBuilder {
	return &LinkBuilder{links: make(map[string]string)}
}

// Link returns a wa.me deep link that opens a chat with the given contact and
// a templated message naming the product. A nil price omits the price line.
// The contact may be raw user input; it is normalized to digits only.
func (b *LinkBuilder) Link(product string, price *float64, whatsapp string) string {
	digits := model.NormalizeWhatsApp(whatsapp)

	key := cacheKey(product, price, digits)
	b.mu.Lock()
	if link, ok := b.links[key]; ok {
		b.mu.Unlock()
		return link
	}
	b.mu.Unlock()

	link := waLinkPrefix + digits + "?text=" + escapeMessage(orderMessage(product, price))

	b.mu.Lock()
	b.links[key] = link
	b.mu.Unlock()
	return link
}

// Len returns the number of memoized links.
func (b *LinkBuilder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.links)
}

func orderMessage(product string, price *float64) string {
	lines := []string{
		"Hola, quiero este producto desde el catálogo:",
		"",
		"• " + product,
	}
	if price != nil {
		lines = append(lines, "Precio: "+FormatPrice(*price))
	}
	lines = append(lines, "", "¿Está disponible?")
	return strings.Join(lines, "\n")
}

// escapeMessage percent-encodes a message for the text query parameter,
// using %20 rather than + for spaces so the link works in every WhatsApp
// client.
func escapeMessage(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

func cacheKey(product string, price *float64, digits string) string {
	var p string
	if price != nil {
		p = strconv.FormatFloat(*price, 'f', -1, 64)
	}
	return product + "\x00" + p + "\x00" + digits
}
