package semantic

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"os"
	"path/filepath"
)

// ErrCacheMiss mirrors cache.ErrCacheMiss's sentinel-miss idiom for the
// file-backed embedding cache.
var ErrCacheMiss = errors.New("semantic: embedding cache miss")

// EmbeddingCache is the on-disk, MD5-keyed embedding store (spec §4.7 step
// 1, §5's "file-per-key; read and write via atomic rename"). It reuses
// cache.Cache's Get/Set shape so it can be dropped in wherever the
// in-process cache is, but is backed by files instead of a map.
type EmbeddingCache struct {
	dir string
}

// NewEmbeddingCache creates a file-backed cache rooted at dir, creating it
// if necessary.
func NewEmbeddingCache(dir string) (*EmbeddingCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &EmbeddingCache{dir: dir}, nil
}

// KeyFor returns the MD5 hex digest of text, the cache key.
func KeyFor(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *EmbeddingCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".vec")
}

// Get reads a cached embedding by text. Readers tolerate a missing file by
// reporting ErrCacheMiss so the caller recomputes.
func (c *EmbeddingCache) Get(ctx context.Context, text string) ([]float32, error) {
	data, err := os.ReadFile(c.pathFor(KeyFor(text)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return decodeVector(data)
}

// Set writes a cached embedding via a temp-file-then-rename so concurrent
// readers never observe a partially-written file (spec §5).
func (c *EmbeddingCache) Set(ctx context.Context, text string, vec []float32) error {
	final := c.pathFor(KeyFor(text))
	tmp, err := os.CreateTemp(c.dir, "tmp-*.vec")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(encodeVector(vec)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, final)
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, errors.New("semantic: corrupt embedding cache entry")
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}
