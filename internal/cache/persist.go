package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stockeye/stockeye/internal/common"
)

// One file per table. Deleting any of them is always safe; the cache
// simply starts cold for that table.
const (
	metadataFile = "metadata.json"
	historyFile  = "history.json"
	batchFile    = "batch.json"
)

// SaveToDisk persists all three tables, one JSON file each, written
// atomically via temp file and rename.
func (c *Cache) SaveToDisk() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir %s: %w", c.dir, err)
	}

	if err := writeJSON(filepath.Join(c.dir, metadataFile), c.metadata.snapshot()); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(c.dir, historyFile), c.history.snapshot()); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(c.dir, batchFile), c.batch.snapshot()); err != nil {
		return err
	}

	stats := c.Stats()
	c.logger.Debug().
		Int("metadata", stats.MetadataEntries).
		Int("history", stats.HistoryEntries).
		Int("batch", stats.BatchEntries).
		Msg("cache persisted")
	return nil
}

// LoadFromDisk restores whatever table files exist. Missing or
// corrupt files leave that table cold; entries already past their
// TTL are dropped during restore.
func (c *Cache) LoadFromDisk() error {
	now := c.now()

	loadTable(c.logger, filepath.Join(c.dir, metadataFile), c.metadata, now)
	loadTable(c.logger, filepath.Join(c.dir, historyFile), c.history, now)
	loadTable(c.logger, filepath.Join(c.dir, batchFile), c.batch, now)

	stats := c.Stats()
	c.logger.Info().
		Int("metadata", stats.MetadataEntries).
		Int("history", stats.HistoryEntries).
		Int("batch", stats.BatchEntries).
		Msg("cache loaded")
	return nil
}

func loadTable[T any](logger *common.Logger, path string, t *table[T], now time.Time) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var entries map[string]entry[T]
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Warn().Err(err).Str("file", path).Msg("discarding corrupt cache file")
		return
	}

	t.restore(entries, now)
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
