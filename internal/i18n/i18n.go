// Package i18n holds the message catalogs for reports and screens.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

//go:embed locales/*.json
var localeFS embed.FS

type ctxKey struct{}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales dir: %w", err)
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				bundleErr = fmt.Errorf("read locale file %s: %w", e.Name(), err)
				return
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale file %s: %w", e.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Languages lists the base language of every embedded catalog.
func Languages() []string {
	b, err := loadBundle()
	if err != nil {
		return nil
	}
	var out []string
	for _, tag := range b.LanguageTags() {
		base, _ := tag.Base()
		out = append(out, base.String())
	}
	return out
}

// Supported reports whether lang has an embedded catalog.
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, l := range Languages() {
		if l == base.String() {
			return true
		}
	}
	return false
}

// Translator resolves message IDs for one language. Missing messages fall
// back to English, then to the message ID itself.
type Translator struct {
	lang string
	loc  *i18n.Localizer
	log  *zap.Logger
}

// New creates a Translator for lang. An empty lang selects DefaultLang.
func New(lang string, log *zap.Logger) (*Translator, error) {
	if lang == "" {
		lang = DefaultLang
	}
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{
		lang: lang,
		loc:  i18n.NewLocalizer(b, lang, DefaultLang),
		log:  log,
	}, nil
}

// English returns the default-language Translator. It panics only if the
// embedded catalogs are broken.
func English() *Translator {
	t, err := New(DefaultLang, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Lang returns the configured language tag.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates a message by ID.
func (t *Translator) T(msgID string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (t *Translator) Td(msgID string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
}

// Tp translates a pluralized message by ID.
func (t *Translator) Tp(msgID string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// Tpd translates a pluralized message with extra template data. Count is
// added to data.
func (t *Translator) Tpd(msgID string, count int, data map[string]any) string {
	td := make(map[string]any, len(data)+1)
	for k, v := range data {
		td[k] = v
	}
	td["Count"] = count
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: td,
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	s, err := t.loc.Localize(cfg)
	if err != nil {
		t.log.Warn("missing translation",
			zap.String("id", cfg.MessageID),
			zap.String("lang", t.lang),
			zap.Error(err))
	}
	if s == "" {
		return cfg.MessageID
	}
	return s
}

// WithTranslator stores a Translator in the context.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the context's Translator, or English when none is set.
func FromContext(ctx context.Context) *Translator {
	if t, ok := ctx.Value(ctxKey{}).(*Translator); ok && t != nil {
		return t
	}
	return English()
}
