package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Vector artifact layout: uint32 row count, uint32 dimension, then
// count*dim little-endian float32 values in row order.

// Save writes the index vectors to the artifact path.
func (f *Flat) Save(path string) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create vectors artifact %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write vectors artifact %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush vectors artifact %s: %w", path, err)
	}
	return nil
}

// WriteTo serializes the index vectors.
func (f *Flat) WriteTo(w io.Writer) error {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:], uint32(len(f.vectors)))
	binary.LittleEndian.PutUint32(header[4:], uint32(f.dim))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]byte, f.dim*4)
	for i, vec := range f.vectors {
		for j, v := range vec {
			binary.LittleEndian.PutUint32(row[j*4:], math.Float32bits(v))
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}

// Load reads a vector artifact into a flat index.
func Load(path string) (*Flat, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open vectors artifact %s: %w", path, err)
	}
	defer file.Close()

	f, err := ReadFrom(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("read vectors artifact %s: %w", path, err)
	}
	return f, nil
}

// ReadFrom deserializes a vector artifact.
func ReadFrom(r io.Reader) (*Flat, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	count := int(binary.LittleEndian.Uint32(header[0:]))
	dim := int(binary.LittleEndian.Uint32(header[4:]))

	f, err := NewFlat(dim)
	if err != nil {
		return nil, err
	}

	row := make([]byte, dim*4)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("read row %d: %w", i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(row[j*4:]))
		}
		if err := f.Add(vec); err != nil {
			return nil, err
		}
	}
	return f, nil
}
