// Package storage provides the random-access buffers ceremony files are read
// from and written to. Inputs are memory mapped read-only; outputs are
// preallocated, written in place and only appear under their final name once
// committed.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnbchain/ptau-setup/parameters"
	"golang.org/x/exp/mmap"
)

var ErrClosed = errors.New("output is already closed")

// Input is a read-only memory map of a ceremony file
type Input struct {
	*mmap.ReaderAt
	Name string
}

// Open maps name and checks its length against the expected size
func Open(name string, size int64) (*Input, error) {
	r, err := mmap.Open(name)
	if err != nil {
		return nil, err
	}
	if err := parameters.CheckFileSize(name, int64(r.Len()), size); err != nil {
		r.Close()
		return nil, err
	}
	return &Input{ReaderAt: r, Name: name}, nil
}

// Size returns the length of the mapped file
func (in *Input) Size() int64 {
	return int64(in.Len())
}

// Output is a file of fixed size written at arbitrary offsets. It is created
// next to its destination and renamed on Commit; Abort removes it.
type Output struct {
	file *os.File
	name string
	tmp  string
}

// Create preallocates a file of size bytes that becomes name on Commit. An
// existing file is never replaced.
func Create(name string, size int64) (*Output, error) {
	if err := checkAbsent(name); err != nil {
		return nil, err
	}
	tmp := name + ".tmp"
	f, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("allocating %s: %w", name, err)
	}
	return &Output{file: f, name: name, tmp: tmp}, nil
}

func (o *Output) WriteAt(p []byte, off int64) (int, error) {
	if o.file == nil {
		return 0, ErrClosed
	}
	return o.file.WriteAt(p, off)
}

func (o *Output) ReadAt(p []byte, off int64) (int, error) {
	if o.file == nil {
		return 0, ErrClosed
	}
	return o.file.ReadAt(p, off)
}

// Commit flushes the file to disk and moves it to its final name
func (o *Output) Commit() error {
	if o.file == nil {
		return ErrClosed
	}
	f := o.file
	o.file = nil
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(o.tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(o.tmp)
		return err
	}
	if err := checkAbsent(o.name); err != nil {
		os.Remove(o.tmp)
		return err
	}
	return os.Rename(o.tmp, o.name)
}

func checkAbsent(name string) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", name, os.ErrExist)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

// Abort discards an uncommitted output. It is a no-op after Commit, so it can
// be deferred right after Create.
func (o *Output) Abort() {
	if o.file == nil {
		return
	}
	o.file.Close()
	o.file = nil
	os.Remove(o.tmp)
}

// Buffer is an in-memory fixed-size buffer
type Buffer struct {
	data []byte
}

func NewBuffer(size int64) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// NewBufferFrom wraps data without copying it
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b.data)) {
		return 0, fmt.Errorf("%w: offset %d", parameters.ErrOutOfRange, off)
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(b.data)) {
		return 0, fmt.Errorf("%w: writing %d bytes at %d", parameters.ErrOutOfRange, len(p), off)
	}
	return copy(b.data[off:], p), nil
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}
