// Package locale formats prices and transliterates digits for the storefront
// locale (Persian by default).
package locale

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Script is an ordered set of ten digit glyphs, zero first.
type Script string

const (
	Persian     Script = "۰۱۲۳۴۵۶۷۸۹"
	ArabicIndic Script = "٠١٢٣٤٥٦٧٨٩"
	Latin       Script = "0123456789"
)

// arabicThousands — разделитель групп разрядов U+066C для fa и ar.
const arabicThousands = '٬'

// Formatter formats numbers for one locale and digit script.
type Formatter struct {
	tag     language.Tag
	script  Script
	printer *message.Printer
	digits  []rune
	group   rune
}

// New creates a formatter for tag using script for transliteration.
func New(tag language.Tag, script Script) *Formatter {
	digits := []rune(string(script))
	if len(digits) != 10 {
		digits = []rune(string(Latin))
		script = Latin
	}
	f := &Formatter{
		tag:     tag,
		script:  script,
		printer: message.NewPrinter(tag),
		digits:  digits,
		group:   ',',
	}
	if script != Latin {
		f.group = arabicThousands
	}
	return f
}

// ForLocale parses a BCP 47 name like "fa-IR" and picks its digit script.
func ForLocale(name string) (*Formatter, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", name, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "fa":
		return New(tag, Persian), nil
	case "ar":
		return New(tag, ArabicIndic), nil
	default:
		return New(tag, Latin), nil
	}
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag { return f.tag }

// FormatPrice floors price to an integer and renders it with the locale's
// grouping separator and digits.
func (f *Formatter) FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return f.localize(f.printer.Sprint(price))
	}
	fl := math.Floor(price)
	if fl >= math.MaxInt64 || fl < math.MinInt64 {
		return f.localize(f.printer.Sprintf("%.0f", fl))
	}
	return f.localize(f.printer.Sprintf("%d", int64(fl)))
}

// localize переводит вывод printer в цифры и разделитель групп скрипта:
// x/text печатает ASCII-цифры и запятую даже для fa.
func (f *Formatter) localize(s string) string {
	if f.group != ',' {
		s = strings.ReplaceAll(s, ",", string(f.group))
	}
	return f.ToLocalDigits(s)
}

// ToLocalDigits replaces ASCII digits with the script's glyphs.
func (f *Formatter) ToLocalDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return f.digits[r-'0']
		}
		return r
	}, s)
}

// FromLocalDigits replaces the script's glyphs with ASCII digits.
func (f *Formatter) FromLocalDigits(s string) string {
	return strings.Map(func(r rune) rune {
		for i, d := range f.digits {
			if d == r {
				return rune('0' + i)
			}
		}
		return r
	}, s)
}

var persianFormatter = New(language.MustParse("fa-IR"), Persian)

// FormatPrice formats price for fa-IR, e.g. 1234.9 → "۱٬۲۳۴".
func FormatPrice(price float64) string { return persianFormatter.FormatPrice(price) }

// ToPersian maps ASCII digits 0-9 to Persian digits.
func ToPersian(s string) string { return persianFormatter.ToLocalDigits(s) }

// ToEnglishDigits maps Persian digits back to ASCII.
func ToEnglishDigits(s string) string { return persianFormatter.FromLocalDigits(s) }
