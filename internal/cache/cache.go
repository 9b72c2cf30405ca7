// Package cache keeps computed saliency maps on disk, keyed by a hash of
// the source content, the algorithm and its configuration.
//
// An entry file is a fixed header followed by a zstd stream:
//
//	"SALM" | version u8 | width u32 | height u32 | colors u32 | mismatches u32
//	zstd( width·height float32 values, row-major, little endian )
package cache

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/AnyUserName/salmap-cli/internal/hasher"
	"github.com/AnyUserName/salmap-cli/internal/saliency"
	"github.com/klauspost/compress/zstd"
)

// ErrCorrupt is returned for entries that do not parse.
var ErrCorrupt = errors.New("cache: corrupt entry")

const (
	magic      = "SALM"
	version    = 1
	headerSize = 4 + 1 + 4*4
	ext        = ".salm"
)

// Entry is one cached computation.
type Entry struct {
	Map        *saliency.Map
	Colors     int
	Mismatches int
}

// Store is a directory of entries, sharded by the first two key chars.
type Store struct {
	Dir string
}

// Key derives the entry key for content processed by algorithm under cfg.
// cfg is hashed through its JSON encoding.
func Key(content []byte, algorithm string, cfg any) (string, error) {
	c, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return hasher.Parts(hasher.FullLen, content, []byte(algorithm), c), nil
}

func (s Store) path(key string) string {
	return filepath.Join(s.Dir, key[:2], key+ext)
}

// Get loads the entry for key. A missing entry is (nil, false, nil).
func (s Store) Get(key string) (*Entry, bool, error) {
	if len(key) < 2 {
		return nil, false, fmt.Errorf("cache: bad key %q", key)
	}
	f, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	e, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}
	return e, true, nil
}

// Put stores e under key, replacing any previous entry. The file is
// written to a temporary name first so readers never see a partial entry.
func (s Store) Put(key string, e *Entry) error {
	if len(key) < 2 {
		return fmt.Errorf("cache: bad key %q", key)
	}
	if e == nil || e.Map == nil {
		return fmt.Errorf("cache: nil entry")
	}
	dst := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, e); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func encode(w io.Writer, e *Entry) error {
	m := e.Map
	var hdr [headerSize]byte
	copy(hdr[:], magic)
	hdr[4] = version
	binary.LittleEndian.PutUint32(hdr[5:], uint32(m.Width))
	binary.LittleEndian.PutUint32(hdr[9:], uint32(m.Height))
	binary.LittleEndian.PutUint32(hdr[13:], uint32(e.Colors))
	binary.LittleEndian.PutUint32(hdr[17:], uint32(e.Mismatches))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	raw := make([]byte, 4*len(m.Pix))
	for i, v := range m.Pix {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(float32(v)))
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func decode(r io.Reader) (*Entry, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if string(hdr[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, hdr[:4])
	}
	if hdr[4] != version {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, hdr[4])
	}
	w := int(binary.LittleEndian.Uint32(hdr[5:]))
	h := int(binary.LittleEndian.Uint32(hdr[9:]))

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if w <= 0 || h <= 0 || len(raw) != 4*w*h {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrCorrupt, len(raw), w, h)
	}

	m := saliency.NewMap(w, h)
	for i := range m.Pix {
		m.Pix[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:])))
	}
	return &Entry{
		Map:        m,
		Colors:     int(binary.LittleEndian.Uint32(hdr[13:])),
		Mismatches: int(binary.LittleEndian.Uint32(hdr[17:])),
	}, nil
}

// Encode serializes e in the entry file format.
func Encode(e *Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses one entry file.
func Decode(data []byte) (*Entry, error) { return decode(bytes.NewReader(data)) }
