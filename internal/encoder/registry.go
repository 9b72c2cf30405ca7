package encoder

import (
	"fmt"
	"strings"
)

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&PNGEncoder{}, &JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	r.encoders["jpg"] = r.encoders["jpeg"]
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// Available returns the canonical format names.
func (r *Registry) Available() []string {
	return []string{"png", "jpeg"}
}

// Resolve returns the encoder for format, or an error naming the
// available formats.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if format == "" {
		format = "png"
	}
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown map format %q (have %s)", format, strings.Join(r.Available(), ", "))
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
