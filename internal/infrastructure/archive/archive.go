// Package archive stores full match data as JSON files grouped by day.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

const (
	jsonExt = ".json"
	zstdExt = ".zst"

	dayLayout  = "2006-01-02"
	timeLayout = "15-04"
)

// zstd encoders and decoders are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("archive: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("archive: zstd decoder initialization failed: " + err.Error())
	}
}

// Store implements ports.Archive on the local filesystem.
// Entries are written to <root>/<YYYY-MM-DD>/<HH-MM>-<hash8>.json, with a
// trailing .zst when compression is enabled.
type Store struct {
	root     string
	compress bool
}

// New creates an archive rooted at root.
func New(root string, cfg config.ArchiveConfig) *Store {
	return &Store{root: root, compress: cfg.Compress}
}

// Save writes match unless an entry with the same short hash already exists
// in the directory of its day.
func (s *Store) Save(ctx context.Context, match *entities.Match) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if match.Hash == "" {
		return "", false, fmt.Errorf("match has no hash")
	}

	dayDir := filepath.Join(s.root, match.RecordedAt.Format(dayLayout))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating archive directory: %w", err)
	}

	existing, err := findEntry(dayDir, match.ShortHash())
	if err != nil {
		return "", false, err
	}
	if existing != "" {
		return existing, true, nil
	}

	data, err := json.MarshalIndent(match, "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("encoding match: %w", err)
	}

	name := match.RecordedAt.Format(timeLayout) + "-" + match.ShortHash() + jsonExt
	if s.compress {
		data = zstdEncoder.EncodeAll(data, nil)
		name += zstdExt
	}

	path := filepath.Join(dayDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", false, err
	}
	return path, false, nil
}

// Load reads an entry written by Save. Compressed entries are detected by
// their extension.
func (s *Store) Load(ctx context.Context, path string) (*entities.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive entry: %w", err)
	}

	if strings.HasSuffix(path, zstdExt) {
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing archive entry: %w", err)
		}
	}

	var match entities.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, fmt.Errorf("decoding archive entry: %w", err)
	}
	if match.ArchivePath == "" {
		match.ArchivePath = path
	}
	return &match, nil
}

// findEntry returns the first archive file in dir whose name carries hash8.
func findEntry(dir, hash8 string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("listing archive directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, jsonExt) && !strings.HasSuffix(name, jsonExt+zstdExt) {
			continue
		}
		if strings.Contains(name, hash8) {
			return filepath.Join(dir, name), nil
		}
	}
	return "", nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing archive entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing archive entry: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming archive entry: %w", err)
	}
	return nil
}
