package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/topi314/cobot-tools/server/cobot"
)

func TestFormatterDate(t *testing.T) {
	assert.Equal(t, "03.04.2012", German.Date(time.Date(2012, time.April, 3, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", German.Date(time.Time{}))
}

func TestFormatterAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   cobot.Amount
		expected string
	}{
		{
			name:     "euro",
			amount:   cobot.Amount{Amount: "290.0", Currency: "EUR"},
			expected: "290,00 EUR",
		},
		{
			name:     "decimal places",
			amount:   cobot.Amount{Amount: "49.9", Currency: "EUR"},
			expected: "49,90 EUR",
		},
		{
			name:     "lowercase currency code",
			amount:   cobot.Amount{Amount: "10", Currency: "eur"},
			expected: "10,00 EUR",
		},
		{
			name:     "empty",
			amount:   cobot.Amount{},
			expected: "",
		},
		{
			name:     "unparseable value passes through",
			amount:   cobot.Amount{Amount: "n/a", Currency: "EUR"},
			expected: "n/a EUR",
		},
		{
			name:     "no currency",
			amount:   cobot.Amount{Amount: "15.5"},
			expected: "15,50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, German.Amount(tt.amount))
		})
	}
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "Muster GmbH\nErika Musterfrau\nBeispielstr. 1, 10115 Berlin", FormatAddress(cobot.Address{
		Company:     "Muster GmbH",
		Name:        "Erika Musterfrau",
		FullAddress: "Beispielstr. 1, 10115 Berlin",
	}))

	assert.Equal(t, "Erika Musterfrau", FormatAddress(cobot.Address{
		Name: "Erika Musterfrau",
	}))

	assert.Equal(t, "", FormatAddress(cobot.Address{}))
}
