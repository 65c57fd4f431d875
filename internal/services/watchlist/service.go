// Package watchlist maintains the user's flat symbol list in a JSON
// file.
package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
)

// Service stores the watchlist as a sorted, deduplicated, uppercase
// symbol list. The file is the source of truth; the in-memory copy
// is a cache guarded by the mutex.
type Service struct {
	path   string
	logger *common.Logger

	mu      sync.Mutex
	symbols []string
	loaded  bool
}

// NewService creates a watchlist service backed by the given file.
func NewService(path string, logger *common.Logger) *Service {
	return &Service{path: path, logger: logger}
}

// Add inserts symbols and returns the updated list.
func (s *Service) Add(ctx context.Context, symbols ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(s.symbols))
	for _, sym := range s.symbols {
		seen[sym] = true
	}
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		s.symbols = append(s.symbols, sym)
	}
	sort.Strings(s.symbols)

	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return s.listLocked(), nil
}

// Remove deletes symbols and returns the updated list. Unknown
// symbols are ignored.
func (s *Service) Remove(ctx context.Context, symbols ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(symbols))
	for _, sym := range symbols {
		drop[strings.ToUpper(strings.TrimSpace(sym))] = true
	}
	kept := s.symbols[:0]
	for _, sym := range s.symbols {
		if !drop[sym] {
			kept = append(kept, sym)
		}
	}
	s.symbols = kept

	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return s.listLocked(), nil
}

// List returns the current watchlist.
func (s *Service) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s.listLocked(), nil
}

// Clear empties the watchlist.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols = nil
	s.loaded = true
	return s.saveLocked()
}

func (s *Service) listLocked() []string {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// loadLocked reads the file once; a missing file is an empty list.
func (s *Service) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.symbols = nil
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read watchlist %s: %w", s.path, err)
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		s.logger.Warn().Err(err).Str("file", s.path).Msg("discarding corrupt watchlist")
		symbols = nil
	}
	sort.Strings(symbols)
	s.symbols = symbols
	s.loaded = true
	return nil
}

func (s *Service) saveLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create watchlist dir %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.symbols, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

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
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Ensure Service implements WatchlistService
var _ interfaces.WatchlistService = (*Service)(nil)
