package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileReader provides common file reading functionality with caching
type FileReader struct {
	contentCache *Cache[[]byte]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewCache[[]byte](),
	}
}

// ReadFile reads a file and returns its contents with caching. Repeated reads
// of an unchanged file hit the cache; a modified file is re-read.
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, exists := fr.contentCache.Get(cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	fr.contentCache.Set(cleanPath, content)

	return content, nil
}

// ClearCache clears all cached file contents
func (fr *FileReader) ClearCache() {
	fr.contentCache.Clear()
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return
	}
	fr.contentCache.Delete(cleanPath)
}

// CacheSize returns the number of cached files
func (fr *FileReader) CacheSize() int {
	return fr.contentCache.Size()
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	// Clean the path to prevent path traversal
	cleanPath := filepath.Clean(filePath)

	// Ensure the clean path doesn't contain path traversal attempts
	if strings.Contains(cleanPath, "..") {
		// Allow .. only if it's at the beginning (relative path)
		if !strings.HasPrefix(cleanPath, "..") {
			return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
		}
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
