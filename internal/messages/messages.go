// Package messages holds the localized response strings keyed by stable
// identifiers, so clients branch on keys while humans read translated text.
// The en-gb table is embedded; a different table can be loaded from disk.
package messages

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

//go:embed en-gb.json
var enGB []byte

var (
	mu    sync.RWMutex
	table = mustParse(enGB)
)

func mustParse(raw []byte) map[string]string {
	m := make(map[string]string)
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("messages: invalid embedded table: %v", err))
	}
	return m
}

// Load replaces the active table with one read from path.
func Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read messages file: %w", err)
	}
	m := make(map[string]string)
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse messages file: %w", err)
	}
	mu.Lock()
	table = m
	mu.Unlock()
	return nil
}

// Get returns the text for key, formatted with args. Unknown keys come back
// as the key itself so a missing translation is visible, not a panic.
func Get(key string, args ...any) string {
	mu.RLock()
	tmpl, ok := table[key]
	mu.RUnlock()
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
