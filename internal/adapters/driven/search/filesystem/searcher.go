// Package filesystem provides a code searcher that scans a project
// directory for the source files behind an HTML fragment.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driven.CodeSearcher = (*Searcher)(nil)

// maxFileSize bounds how much of a candidate file is read.
const maxFileSize = 512 * 1024

// maxPreviewLen bounds the excerpt carried on a search hit.
const maxPreviewLen = 200

// sourceExtensions are the file types considered when searching for
// the markup behind a finding.
var sourceExtensions = map[string]bool{
	".html":   true,
	".htm":    true,
	".tsx":    true,
	".jsx":    true,
	".ts":     true,
	".js":     true,
	".mjs":    true,
	".vue":    true,
	".svelte": true,
	".astro":  true,
	".erb":    true,
	".php":    true,
	".twig":   true,
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	".next":        true,
}

// tokenPattern splits fragments and file content into comparable tokens.
var tokenPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Searcher walks a project directory and returns candidate files whose
// content shares tokens with the fragment. File listings are cached per
// project directory and invalidated through a filesystem watcher.
type Searcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	cache   map[string][]string // projectDir -> file list
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSearcher creates a filesystem code searcher.
func NewSearcher() (*Searcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	s := &Searcher{
		watcher: watcher,
		cache:   make(map[string][]string),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go s.watch()

	return s, nil
}

// Search returns candidate files related to the fragment, best first.
func (s *Searcher) Search(ctx context.Context, projectDir, fragment string, limit int) ([]domain.SearchHit, error) {
	if projectDir == "" || fragment == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}

	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoProjectDir, projectDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrNoProjectDir, projectDir)
	}

	files, err := s.listFiles(projectDir)
	if err != nil {
		return nil, err
	}

	tokens := tokenise(fragment)
	if len(tokens) == 0 {
		return nil, nil
	}

	type scored struct {
		hit     domain.SearchHit
		matches int
	}

	var candidates []scored
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := readCapped(path)
		if err != nil {
			logger.Debug("Skipping unreadable file %s: %v", path, err)
			continue
		}

		matches, line := matchTokens(content, tokens)
		if matches == 0 {
			continue
		}

		rel, err := filepath.Rel(projectDir, path)
		if err != nil {
			rel = path
		}

		candidates = append(candidates, scored{
			hit: domain.SearchHit{
				Path:    rel,
				Preview: preview(line),
				Content: content,
			},
			matches: matches,
		})
	}

	// Best token coverage first; ties break on path for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].matches != candidates[j].matches {
			return candidates[i].matches > candidates[j].matches
		}
		return candidates[i].hit.Path < candidates[j].hit.Path
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	hits := make([]domain.SearchHit, len(candidates))
	for i, c := range candidates {
		hits[i] = c.hit
	}

	logger.Debug("Found %d candidate files for fragment in %s", len(hits), projectDir)
	return hits, nil
}

// Close stops the watcher and releases resources.
func (s *Searcher) Close() error {
	close(s.stopCh)
	err := s.watcher.Close()
	<-s.doneCh
	return err
}

// listFiles returns the cached source file list for a project
// directory, walking the tree on a cache miss.
func (s *Searcher) listFiles(projectDir string) ([]string, error) {
	s.mu.Lock()
	if files, ok := s.cache[projectDir]; ok {
		s.mu.Unlock()
		return files, nil
	}
	s.mu.Unlock()

	var files []string
	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			// Watch every directory so edits invalidate the cache.
			if err := s.watcher.Add(path); err != nil {
				logger.Debug("Watch failed for %s: %v", path, err)
			}
			return nil
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking project directory: %w", err)
	}

	s.mu.Lock()
	s.cache[projectDir] = files
	s.mu.Unlock()

	return files, nil
}

// watch consumes filesystem events and drops cached listings for any
// project directory containing the changed path.
func (s *Searcher) watch() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.invalidate(event.Name)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Debug("Watcher error: %v", err)
		}
	}
}

// invalidate drops cache entries whose project directory contains path.
func (s *Searcher) invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for dir := range s.cache {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) || path == dir {
			delete(s.cache, dir)
		}
	}
}

// tokenise splits a fragment into lowercase tokens, dropping short noise.
func tokenise(fragment string) []string {
	parts := tokenPattern.Split(strings.ToLower(fragment), -1)
	tokens := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, p := range parts {
		if len(p) < 3 || seen[p] {
			continue
		}
		seen[p] = true
		tokens = append(tokens, p)
	}
	return tokens
}

// matchTokens counts fragment tokens present in the content and returns
// the line with the densest token coverage for preview extraction.
func matchTokens(content string, tokens []string) (int, string) {
	lower := strings.ToLower(content)

	matches := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			matches++
		}
	}
	if matches == 0 {
		return 0, ""
	}

	bestLine := ""
	bestCount := 0
	for _, line := range strings.Split(content, "\n") {
		lowerLine := strings.ToLower(line)
		count := 0
		for _, tok := range tokens {
			if strings.Contains(lowerLine, tok) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestLine = line
		}
	}

	return matches, bestLine
}

// preview trims a matched line to excerpt length.
func preview(line string) string {
	line = strings.TrimSpace(line)
	if len(line) > maxPreviewLen {
		line = line[:maxPreviewLen]
	}
	return line
}

// readCapped reads a file, skipping anything over the size cap.
func readCapped(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("file exceeds %d bytes", maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
