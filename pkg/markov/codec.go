package markov

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// persistedModel is the serialized form of a Model: the depth plus every
// context's cumulative-frequency table keyed by Context.Key.
type persistedModel struct {
	Depth       int                     `json:"depth"`
	Transitions map[string]Distribution `json:"transitions"`
}

// Encode writes the model to w as zlib-compressed JSON.
func (m *Model) Encode(w io.Writer) error {
	zw := zlib.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(persistedModel{Depth: m.depth, Transitions: m.transitions}); err != nil {
		_ = zw.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush compressed model: %w", err)
	}
	return nil
}

// Decode reads a model written by Encode. The input must hold exactly one
// compressed model. Data that cannot be decompressed or decoded, trailing
// data, and models that violate the invariants fail with an error wrapping
// ErrCorruptModel.
func Decode(r io.Reader) (*Model, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	defer func(zr io.ReadCloser) {
		_ = zr.Close()
	}(zr)

	var p persistedModel
	dec := json.NewDecoder(zr)
	if err = dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: failed to decode model: %v", ErrCorruptModel, err)
	}
	// Token only reports io.EOF once the compressed stream, checksum included,
	// has been fully read.
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after model")
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if _, err = br.Peek(1); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after compressed stream")
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	return Restore(p.Depth, p.Transitions)
}

// SaveFile writes the model to path. The file is replaced atomically, so a
// failed save leaves any previous model intact.
func (m *Model) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("could not write model file: %w", err)
	}
	return nil
}

// LoadFile reads a model previously written with SaveFile.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open model file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	m, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
