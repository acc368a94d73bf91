package i18n

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// catalog holds host-supplied message overrides, keyed language -> code.
// Overrides take precedence over the built-in dictionary.
var (
	catalogMu sync.RWMutex
	catalog   map[string]map[string]string
)

// LoadCatalog merges YAML message overrides into the catalog. The expected
// document shape is language -> code -> message:
//
//	en:
//	  required: "this field is required"
//	ja:
//	  required: "必須項目です"
func LoadCatalog(content []byte) error {
	var data map[string]map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("i18n: parse catalog: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("i18n: catalog contains no translations")
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if catalog == nil {
		catalog = make(map[string]map[string]string, len(data))
	}
	for lang, msgs := range data {
		dst := catalog[lang]
		if dst == nil {
			dst = make(map[string]string, len(msgs))
			catalog[lang] = dst
		}
		for code, msg := range msgs {
			dst[code] = msg
		}
	}
	return nil
}

// ResetCatalog drops all loaded overrides.
func ResetCatalog() {
	catalogMu.Lock()
	catalog = nil
	catalogMu.Unlock()
}

func lookupCatalog(lang, code string) (string, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	if msgs, ok := catalog[lang]; ok {
		if msg, ok := msgs[code]; ok {
			return msg, true
		}
	}
	return "", false
}
