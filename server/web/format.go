package web

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/topi314/cobot-tools/server/cobot"
)

// German renders dates and amounts the way the support desk expects them.
var German = NewFormatter(language.German, "02.01.2006")

func NewFormatter(tag language.Tag, dateLayout string) *Formatter {
	return &Formatter{
		printer:    message.NewPrinter(tag),
		dateLayout: dateLayout,
	}
}

type Formatter struct {
	printer    *message.Printer
	dateLayout string
}

func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.dateLayout)
}

// Amount renders a provider amount like {"amount": "290.0", "currency": "EUR"}
// as "290,00 EUR". Amounts that fail to parse pass through untouched.
func (f *Formatter) Amount(amount cobot.Amount) string {
	if amount.Amount == "" {
		return ""
	}

	value, err := strconv.ParseFloat(amount.Amount, 64)
	if err != nil {
		return strings.TrimSpace(amount.Amount + " " + amount.Currency)
	}

	code := amount.Currency
	if unit, err := currency.ParseISO(amount.Currency); err == nil {
		code = unit.String()
	}

	return strings.TrimSpace(f.printer.Sprintf("%.2f %s", value, code))
}

// FormatAddress joins company, contact name and postal address, skipping
// whatever the membership does not have.
func FormatAddress(address cobot.Address) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{address.Company, address.Name, address.FullAddress} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n")
}
