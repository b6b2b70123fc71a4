// Package remind composes payment reminder messages and the WhatsApp links
// that deliver them. Actual delivery happens outside the tool: the CLI
// prints wa.me links the user opens in a browser.
package remind

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexgomez/lavafix/internal/model"
)

// CountryPrefix is prepended to every phone number on file; the client base
// is Guatemalan.
const CountryPrefix = "502"

// SendDelay is the pause between sends when a client has more than one
// phone on file.
const SendDelay = 500 * time.Millisecond

const messageTemplate = `Estimado/a %s,

Espero que se encuentre bien. Le escribo para recordarle amablemente que tiene un pago pendiente de Q%s

Agradecemos su pronta atención a este asunto.

Para cualquier consulta o reporte de problemas, puede contactar a:
Alex Gómez
Teléfono: 37080233

¡Muchas gracias!`

// Compose builds the reminder text for a client, interpolating the name and
// the formatted monthly amount.
func Compose(c *model.Client) string {
	return fmt.Sprintf(messageTemplate, c.Name, c.MonthlyAmount.StringFixed(2))
}

// Link is one outbound reminder destination.
type Link struct {
	Phone string
	URL   string
}

// Links returns one wa.me URL per phone number the client has on file,
// primary first. Phone numbers are normalized to digits only.
func Links(c *model.Client) []Link {
	message := url.QueryEscape(Compose(c))
	var links []Link
	for _, phone := range c.Phones() {
		digits := digitsOnly(phone)
		if digits == "" {
			continue
		}
		links = append(links, Link{
			Phone: phone,
			URL:   "https://wa.me/" + CountryPrefix + digits + "?text=" + message,
		})
	}
	return links
}

// Send delivers the client's reminder links through fn, pausing SendDelay
// between multiple destinations. fn is typically "print the link" or "open
// the browser"; a failed send stops the sequence.
func Send(c *model.Client, fn func(Link) error) error {
	links := Links(c)
	for i, l := range links {
		if i > 0 {
			time.Sleep(SendDelay)
		}
		if err := fn(l); err != nil {
			return err
		}
	}
	return nil
}

// digitsOnly strips everything but digits from a phone number.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
