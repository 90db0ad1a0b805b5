package polyglot

import (
	"context"
	"fmt"
	"time"

	"github.com/bregydoc/gtranslate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Provider names accepted in configuration.
const (
	ProviderGoogle = "google"
	ProviderCopy   = "copy"
)

// Providers lists the accepted provider names, default first.
var Providers = []string{ProviderGoogle, ProviderCopy}

// Translator translates a single string between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// translateFunc matches gtranslate.TranslateWithParams.
type translateFunc func(text string, params gtranslate.TranslationParams) (string, error)

// GoogleTranslator calls the public Google Translate endpoint.
type GoogleTranslator struct {
	Tries int
	Delay time.Duration

	translate translateFunc // for testing; nil = gtranslate.TranslateWithParams
}

// NewGoogleTranslator returns a translator that retries each call up to tries
// times, waiting delay between attempts.
func NewGoogleTranslator(tries int, delay time.Duration) *GoogleTranslator {
	return &GoogleTranslator{Tries: tries, Delay: delay}
}

func (g *GoogleTranslator) fn() translateFunc {
	if g.translate != nil {
		return g.translate
	}
	return gtranslate.TranslateWithParams
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ctx, span := tracer.Start(ctx, "translate",
		trace.WithAttributes(
			attribute.String("provider", ProviderGoogle),
			attribute.String("from", from),
			attribute.String("to", to),
		),
	)
	defer span.End()

	tries := g.Tries
	if tries <= 0 {
		tries = 1
	}
	out, err := g.fn()(text, gtranslate.TranslationParams{
		From:  from,
		To:    to,
		Tries: tries,
		Delay: g.Delay,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("translate %s -> %s: %w", from, to, err)
	}
	recordTranslation(ctx, ProviderGoogle, to)
	return out, nil
}

// CopyTranslator returns the source text unchanged.
// Useful to seed placeholder entries when offline.
type CopyTranslator struct{}

func (CopyTranslator) Translate(ctx context.Context, text, _, to string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	recordTranslation(ctx, ProviderCopy, to)
	return text, nil
}

// NewTranslator builds the translator configured by cfg, wrapped by the
// persistent cache when one is configured. The returned close function
// releases the cache and is always safe to call.
func NewTranslator(ctx context.Context, cfg *Config) (Translator, func() error, error) {
	var tr Translator
	switch cfg.Provider {
	case "", ProviderGoogle:
		tr = NewGoogleTranslator(cfg.Tries, cfg.Delay)
	case ProviderCopy:
		tr = CopyTranslator{}
	default:
		return nil, nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}

	if cfg.Cache == "" {
		return tr, func() error { return nil }, nil
	}
	cache, err := OpenCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	return cache.Wrap(tr), cache.Close, nil
}
