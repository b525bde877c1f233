package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"Vitrin/internal/cli/locale"
	"Vitrin/internal/config"
)

type priceCmd struct{}

func (priceCmd) Name() string        { return "price" }
func (priceCmd) Description() string { return "Format a price for the configured locale" }
func (priceCmd) Usage() string       { return "price <number>" }

func (priceCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	f, err := locale.ForLocale(cfg.Locale)
	if err != nil {
		return err
	}
	// принимаем и персидские цифры на входе
	raw := f.FromLocalDigits(locale.ToEnglishDigits(args[0]))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", args[0])
	}
	fmt.Fprintln(Out, f.FormatPrice(v))
	return nil
}

type digitsCmd struct{}

func (digitsCmd) Name() string        { return "digits" }
func (digitsCmd) Description() string { return "Transliterate digits: fa (to Persian) or en (to ASCII)" }
func (digitsCmd) Usage() string       { return "digits fa|en <text>" }

func (digitsCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	text := strings.Join(args[1:], " ")
	switch args[0] {
	case "fa":
		fmt.Fprintln(Out, locale.ToPersian(text))
	case "en":
		fmt.Fprintln(Out, locale.ToEnglishDigits(text))
	default:
		return ErrUsage
	}
	return nil
}

func init() {
	RegisterCmd(priceCmd{})
	RegisterCmd(digitsCmd{})
}
