// Package corpus loads reference material into a corpus store.
package corpus

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plagcheck/internal/domain"
)

// LoadDir reads every .txt file under dir (non-recursive) into entries
// tagged as internal reference material and writes them to the store.
// Returns the number of entries added.
func LoadDir(ctx context.Context, dir string, store domain.CorpusWriter) (int, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read corpus dir: %w", err)
	}
	var entries []domain.CorpusEntry
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(strings.ToLower(item.Name()), ".txt") {
			continue
		}
		path := filepath.Join(dir, item.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		entries = append(entries, domain.CorpusEntry{
			ID:         hashString(path),
			Text:       text,
			SourceType: domain.SourceInternal,
			Title:      item.Name(),
		})
	}
	return store.AddEntries(ctx, entries)
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
