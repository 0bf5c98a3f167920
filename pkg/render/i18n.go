package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-uibuilder/pkg/structure"
)

// Attribute hints naming translation keys for a descriptor's text fields.
const (
	TitleKeyAttr       = "titleKey"
	DescriptionKeyAttr = "descriptionKey"
	LabelKeyAttr       = "labelKey"
	PlaceholderKeyAttr = "placeholderKey"
)

// ErrMissingTranslator is passed to the missing handler when keys are present
// but no translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string used when a key cannot be
// translated. args carries {"default": fallback} for descriptor hints.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if values, ok := arg.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// localize replaces title/description and the label/placeholder attributes
// with the translations named by their *Key hints.
func (r *Renderer) localize(d *structure.Descriptor) {
	if len(d.Attrs) == 0 || (r.translator == nil && r.onMissing == nil) {
		return
	}

	if key := d.StringAttr(TitleKeyAttr); key != "" {
		d.Title = r.translate(key, d.Title)
	}
	if key := d.StringAttr(DescriptionKeyAttr); key != "" {
		d.Description = r.translate(key, d.Description)
	}
	if key := d.StringAttr(LabelKeyAttr); key != "" {
		d.Attrs["label"] = r.translate(key, d.StringAttr("label"))
	}
	if key := d.StringAttr(PlaceholderKeyAttr); key != "" {
		d.Attrs["placeholder"] = r.translate(key, d.StringAttr("placeholder"))
	}
}

func (r *Renderer) translate(key, fallback string) string {
	return r.translateIn(r.locale, key, map[string]any{"default": fallback})
}

// translateIn resolves key for locale. Without a translator or on failure the
// missing handler decides the result.
func (r *Renderer) translateIn(locale, key string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	onMissing := r.onMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if r.translator == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	result, err := r.translator.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}

// templateHelpers exposes translation to view and element templates:
//
//	{{ translate("actions.save") }}
//	{{ translate_in("de", "actions.save") }}
//	{{ locale }}
func (r *Renderer) templateHelpers() map[string]any {
	return map[string]any{
		"translate": func(key string, args ...any) string {
			return r.translateIn(r.locale, key, args...)
		},
		"translate_in": func(locale, key string, args ...any) string {
			return r.translateIn(strings.TrimSpace(locale), key, args...)
		},
		"locale": r.locale,
	}
}
