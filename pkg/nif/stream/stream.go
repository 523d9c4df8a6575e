// Package stream implements the reversible NIF stream: a single Sync call
// either reads into or writes from a field, depending on the stream mode, so
// each block layout is written once and shared by load and save.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Mode selects the direction of a Stream.
type Mode int

const (
	// Reading fills fields from the underlying source.
	Reading Mode = iota
	// Writing emits fields to the underlying sink.
	Writing
)

func (m Mode) String() string {
	if m == Reading {
		return "reading"
	}
	return "writing"
}

// ErrTruncated is recorded when a read runs past the end of the source or a
// count asks for more elements than the source can still hold.
var ErrTruncated = errors.New("stream truncated")

// maxLineLength bounds SyncLine so a file without newlines cannot make us
// buffer the whole input.
const maxLineLength = 256

// lenReader is implemented by bytes.Reader and friends.
type lenReader interface {
	Len() int
}

// Stream is a version-aware, mode-switchable little-endian stream.
// Errors are sticky: after the first failure every read yields zero values
// and every write is dropped, and Err reports the failure.
type Stream struct {
	mode    Mode
	r       io.Reader
	w       io.Writer
	version *version.NiVersion
	pos     int64
	err     error
	scratch [8]byte
}

// NewReader returns a stream in Reading mode.
func NewReader(r io.Reader, v *version.NiVersion) *Stream {
	return &Stream{mode: Reading, r: r, version: v}
}

// NewWriter returns a stream in Writing mode.
func NewWriter(w io.Writer, v *version.NiVersion) *Stream {
	return &Stream{mode: Writing, w: w, version: v}
}

// Mode returns the stream direction.
func (s *Stream) Mode() Mode { return s.mode }

// IsReading reports Reading mode.
func (s *Stream) IsReading() bool { return s.mode == Reading }

// IsWriting reports Writing mode.
func (s *Stream) IsWriting() bool { return s.mode == Writing }

// Version returns the version the stream lays fields out for.
func (s *Stream) Version() *version.NiVersion { return s.version }

// SetVersion replaces the version. The header does this once it has read
// the version fields.
func (s *Stream) SetVersion(v *version.NiVersion) { s.version = v }

// Position returns the number of bytes read or written so far.
func (s *Stream) Position() int64 { return s.pos }

// Err returns the first error the stream hit.
func (s *Stream) Err() error { return s.err }

// Fail records err unless an earlier error is already recorded.
func (s *Stream) Fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Remaining returns how many bytes a reader has left, or -1 when the source
// cannot tell.
func (s *Stream) Remaining() int {
	if lr, ok := s.r.(lenReader); ok {
		return lr.Len()
	}
	return -1
}

// SyncBytes reads into or writes from b.
func (s *Stream) SyncBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	if s.err != nil {
		if s.mode == Reading {
			clear(b)
		}
		return
	}

	if s.mode == Reading {
		n, err := io.ReadFull(s.r, b)
		s.pos += int64(n)
		if err != nil {
			clear(b)
			s.err = fmt.Errorf("%w at offset %d: %v", ErrTruncated, s.pos, err)
		}
		return
	}

	n, err := s.w.Write(b)
	s.pos += int64(n)
	if err != nil {
		s.err = fmt.Errorf("write at offset %d: %w", s.pos, err)
	}
}

// Skip discards n bytes when reading and writes n zero bytes when writing.
func (s *Stream) Skip(n int) {
	if n <= 0 {
		return
	}
	s.SyncBytes(make([]byte, n))
}

// CanHold reports whether a reader still has n*elemSize bytes. Writers and
// sources of unknown length always can. A failed check records ErrTruncated.
func (s *Stream) CanHold(n int, elemSize int) bool {
	if s.mode == Writing {
		return true
	}
	if s.err != nil {
		return n == 0
	}
	rem := s.Remaining()
	if rem < 0 || n == 0 {
		return true
	}
	if elemSize <= 0 {
		elemSize = 1
	}
	if n < 0 || int64(n)*int64(elemSize) > int64(rem) {
		s.err = fmt.Errorf("%w: %d elements of %d bytes at offset %d, %d bytes left",
			ErrTruncated, n, elemSize, s.pos, rem)
		return false
	}
	return true
}

func (s *Stream) syncBinary(v any) {
	if s.err != nil {
		if s.mode == Reading {
			// Zero the value so readers never see stale data.
			size := binary.Size(v)
			if size > 0 {
				_ = binary.Read(zeroReader{}, binary.LittleEndian, v)
			}
		}
		return
	}

	size := binary.Size(v)
	if size < 0 {
		s.err = fmt.Errorf("type %T has no fixed size", v)
		return
	}

	if s.mode == Reading {
		if err := binary.Read(s.r, binary.LittleEndian, v); err != nil {
			s.err = fmt.Errorf("%w at offset %d: %v", ErrTruncated, s.pos, err)
			_ = binary.Read(zeroReader{}, binary.LittleEndian, v)
			return
		}
		s.pos += int64(size)
		return
	}

	if err := binary.Write(s.w, binary.LittleEndian, v); err != nil {
		s.err = fmt.Errorf("write at offset %d: %w", s.pos, err)
		return
	}
	s.pos += int64(size)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
