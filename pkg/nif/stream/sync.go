package stream

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Sync reads into or writes from any fixed-size value.
func Sync[T any](s *Stream, v *T) {
	switch p := any(v).(type) {
	case *uint8:
		syncUint(s, p, 1)
	case *int8:
		u := uint8(*p)
		syncUint(s, &u, 1)
		*p = int8(u)
	case *uint16:
		syncUint(s, p, 2)
	case *int16:
		u := uint16(*p)
		syncUint(s, &u, 2)
		*p = int16(u)
	case *uint32:
		syncUint(s, p, 4)
	case *int32:
		u := uint32(*p)
		syncUint(s, &u, 4)
		*p = int32(u)
	case *uint64:
		syncUint(s, p, 8)
	case *float32:
		u := math.Float32bits(*p)
		syncUint(s, &u, 4)
		*p = math.Float32frombits(u)
	default:
		s.syncBinary(v)
	}
}

func syncUint[T constraints.Unsigned](s *Stream, v *T, size int) {
	b := s.scratch[:size]
	if s.mode == Writing {
		x := uint64(*v)
		for i := 0; i < size; i++ {
			b[i] = byte(x >> (8 * i))
		}
		s.SyncBytes(b)
		return
	}

	s.SyncBytes(b)
	var x uint64
	for i := 0; i < size; i++ {
		x |= uint64(b[i]) << (8 * i)
	}
	*v = T(x)
}

// SyncSlice syncs every element of v in place. The slice length is the
// caller's business.
func SyncSlice[T any](s *Stream, v []T) {
	if len(v) == 0 {
		return
	}
	var zero T
	if !s.CanHold(len(v), binary.Size(zero)) {
		clear(v)
		return
	}
	switch p := any(v).(type) {
	case []uint8:
		s.SyncBytes(p)
	default:
		s.syncBinary(v)
	}
}

// Resize grows or shrinks v to n elements, keeping the existing prefix.
func Resize[T any](v *[]T, n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(*v) {
		old := len(*v)
		*v = (*v)[:n]
		if n > old {
			clear((*v)[old:])
		}
		return
	}
	grown := make([]T, n)
	copy(grown, *v)
	*v = grown
}

// SyncCount syncs a count field of type C. When writing, the count is taken
// from length; the resulting count is returned in both modes.
func SyncCount[C constraints.Unsigned](s *Stream, c *C, length int) int {
	if s.mode == Writing {
		*c = C(length)
	}
	Sync(s, c)
	return int(*c)
}

// SyncVector syncs a count of type C followed by that many fixed-size
// elements.
func SyncVector[C constraints.Unsigned, T any](s *Stream, v *[]T) {
	var c C
	n := SyncCount(s, &c, len(*v))
	SyncVectorN(s, v, n)
}

// SyncVectorN syncs exactly n fixed-size elements, resizing v when reading.
func SyncVectorN[T any](s *Stream, v *[]T, n int) {
	if s.mode == Reading {
		var zero T
		if !s.CanHold(n, binary.Size(zero)) {
			*v = nil
			return
		}
		Resize(v, n)
	} else if len(*v) != n {
		Resize(v, n)
	}
	SyncSlice(s, *v)
}

// SyncEach syncs a count of type C followed by elements that sync
// themselves, such as records with version-dependent layouts.
func SyncEach[C constraints.Unsigned, T any, P interface {
	*T
	Sync(*Stream)
}](s *Stream, v *[]T) {
	var c C
	n := SyncCount(s, &c, len(*v))
	SyncEachN[T, P](s, v, n)
}

// SyncEachN syncs exactly n self-syncing elements.
func SyncEachN[T any, P interface {
	*T
	Sync(*Stream)
}](s *Stream, v *[]T, n int) {
	if s.mode == Reading {
		if !s.CanHold(n, 1) {
			*v = nil
			return
		}
		Resize(v, n)
	} else if len(*v) != n {
		Resize(v, n)
	}
	for i := range *v {
		P(&(*v)[i]).Sync(s)
	}
}

// SyncHalf syncs a float32 as an IEEE-754 binary16, always two bytes.
func (s *Stream) SyncHalf(f *float32) {
	var h uint16
	if s.mode == Writing {
		h = float16.Fromfloat32(*f).Bits()
	}
	syncUint(s, &h, 2)
	if s.mode == Reading {
		*f = float16.Frombits(h).Float32()
	}
}

// SyncBool syncs a boolean: one byte from 4.1.0.1 on, four bytes before.
func (s *Stream) SyncBool(b *bool) {
	if s.version == nil || s.version.File() >= version.V4_1_0_1 {
		var v uint8
		if *b {
			v = 1
		}
		syncUint(s, &v, 1)
		*b = v != 0
		return
	}

	var v uint32
	if *b {
		v = 1
	}
	syncUint(s, &v, 4)
	*b = v != 0
}

// SyncByteBool syncs a boolean that is always one byte wide.
func (s *Stream) SyncByteBool(b *bool) {
	var v uint8
	if *b {
		v = 1
	}
	syncUint(s, &v, 1)
	*b = v != 0
}

// SyncLine syncs newline-terminated text. The newline is not part of str.
func (s *Stream) SyncLine(str *string) {
	if s.mode == Writing {
		s.SyncBytes([]byte(*str + "\n"))
		return
	}

	var line []byte
	var b [1]byte
	for len(line) < maxLineLength {
		s.SyncBytes(b[:])
		if s.err != nil || b[0] == '\n' {
			break
		}
		line = append(line, b[0])
	}
	*str = string(line)
}

// SyncSizedString syncs a string prefixed by its length in a 1, 2 or 4 byte
// field. No terminator is written.
func (s *Stream) SyncSizedString(str *string, width int) {
	n := len(*str)
	switch width {
	case 1:
		c := uint8(n)
		n = SyncCount(s, &c, n)
	case 2:
		c := uint16(n)
		n = SyncCount(s, &c, n)
	default:
		c := uint32(n)
		n = SyncCount(s, &c, n)
	}

	if s.mode == Writing {
		s.SyncBytes([]byte((*str)[:n]))
		return
	}
	if !s.CanHold(n, 1) {
		*str = ""
		return
	}
	b := make([]byte, n)
	s.SyncBytes(b)
	*str = string(b)
}

// SyncExportString syncs a string with a one-byte length that counts a
// trailing NUL, as the Bethesda export info fields are stored.
func (s *Stream) SyncExportString(str *string) {
	if s.mode == Writing {
		v := *str
		if len(v) > 254 {
			v = v[:254]
		}
		n := uint8(len(v) + 1)
		Sync(s, &n)
		s.SyncBytes(append([]byte(v), 0))
		return
	}

	var n uint8
	Sync(s, &n)
	b := make([]byte, n)
	s.SyncBytes(b)
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	*str = string(b)
}

// SyncFixedString syncs a string padded or truncated to exactly n bytes.
func (s *Stream) SyncFixedString(str *string, n int) {
	b := make([]byte, n)
	if s.mode == Writing {
		copy(b, *str)
	}
	s.SyncBytes(b)
	if s.mode == Reading {
		for i, c := range b {
			if c == 0 {
				b = b[:i]
				break
			}
		}
		*str = string(b)
	}
}
