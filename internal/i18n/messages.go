package i18n

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Translator resolves UI strings per locale, falling back to the default
// locale and finally to the key itself.
type Translator struct {
	set      *Set
	messages map[string]map[string]string
}

// NewTranslator loads the embedded message bundle.
func NewTranslator(set *Set) (*Translator, error) {
	return NewTranslatorFromYAML(set, defaultMessages)
}

// NewTranslatorFromYAML decodes a bundle shaped as locale -> key -> message.
func NewTranslatorFromYAML(set *Set, data []byte) (*Translator, error) {
	messages := map[string]map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("i18n: decode messages: %w", err)
	}
	return &Translator{set: set, messages: messages}, nil
}

// T returns the message for key, formatted with args when present.
func (t *Translator) T(locale, key string, args ...any) string {
	msg, ok := t.lookup(locale, key)
	if !ok && t.set != nil {
		msg, ok = t.lookup(t.set.Default(), key)
	}
	if !ok {
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func (t *Translator) lookup(locale, key string) (string, bool) {
	bundle, ok := t.messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := bundle[key]
	return msg, ok
}
