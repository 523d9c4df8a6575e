// Package header implements the NIF file header: the version fields, the
// block type table, per-block sizes, the string table and groups. The header
// also owns the block list, so every operation that changes block order
// rewrites the references held by other blocks.
package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

var (
	// ErrInvalidMagic is returned when the first line is not a NIF magic line.
	ErrInvalidMagic       = errors.New("invalid nif magic line")
	// ErrUnsupportedVersion is returned when the version fields disagree or
	// describe a file older than the format supports.
	ErrUnsupportedVersion = errors.New("unsupported nif version")
)

// Magic line prefixes.
const (
	magicGamebryo   = "Gamebryo File Format, Version "
	magicNetImmerse = "NetImmerse File Format, Version "
	magicNDS        = "NDSNIF....@....@...., Version "
)

// MinFileVersion is the oldest file version that can be read.
const MinFileVersion = version.V3_3_0_13

// Endianness byte values.
const (
	EndianBig    uint8 = 0
	EndianLittle uint8 = 1
)

// ExportInfo is the Bethesda stream header that follows the user version.
type ExportInfo struct {
	Author        string
	UnknownInt    uint32
	ProcessScript string
	ExportScript  string
	MaxFilepath   string
}

func (e *ExportInfo) sync(s *stream.Stream) {
	v := s.Version()
	s.SyncExportString(&e.Author)
	if v.Stream() > 130 {
		stream.Sync(s, &e.UnknownInt)
	}
	if v.Stream() < 131 {
		s.SyncExportString(&e.ProcessScript)
	}
	s.SyncExportString(&e.ExportScript)
	if v.Stream() >= 103 {
		s.SyncExportString(&e.MaxFilepath)
	}
}

// Header is the block table of a NIF file.
type Header struct {
	version    *version.NiVersion
	Endian     uint8
	ExportInfo ExportInfo

	blockTypes       []string
	blockTypeIndices []uint16
	blockSizes       []uint32
	strings          []string
	maxStringLen     uint32
	Groups           []uint32

	blocks    []object.NiObject
	roots     []object.Ref
	readCount uint32
	valid     bool
}

// New returns an empty header for v with a single root at block 0.
func New(v *version.NiVersion) *Header {
	return &Header{
		version: v,
		Endian:  EndianLittle,
		roots:   []object.Ref{object.NewRef(0)},
		valid:   true,
	}
}

// Version returns the version the header was read with or will be written
// with. Blocks and streams share this value.
func (h *Header) Version() *version.NiVersion { return h.version }

// SetVersion replaces the version.
func (h *Header) SetVersion(v *version.NiVersion) { h.version = v }

// IsValid reports whether the header parsed cleanly or was created empty.
func (h *Header) IsValid() bool { return h.valid }

// NumBlocks returns the number of blocks.
func (h *Header) NumBlocks() uint32 { return uint32(len(h.blocks)) }

// Blocks returns the block list. Callers must not reorder it directly.
func (h *Header) Blocks() []object.NiObject { return h.blocks }

// Block returns the block at id, or nil when id is out of range.
func (h *Header) Block(id uint32) object.NiObject {
	if id >= uint32(len(h.blocks)) {
		return nil
	}
	return h.blocks[id]
}

// BlockSize returns the size recorded for block id when the format stores
// one, or zero.
func (h *Header) BlockSize(id uint32) uint32 {
	if id >= uint32(len(h.blockSizes)) {
		return 0
	}
	return h.blockSizes[id]
}

// SetBlockSize records the byte size of block id.
func (h *Header) SetBlockSize(id uint32, size uint32) {
	if id < uint32(len(h.blockSizes)) {
		h.blockSizes[id] = size
	}
}

// HasBlockSizes reports whether the version stores per-block sizes.
func (h *Header) HasBlockSizes() bool {
	return h.version.File() >= version.V20_2_0_5
}

// BlockTypes returns the block type table.
func (h *Header) BlockTypes() []string { return h.blockTypes }

// Roots returns the footer root references.
func (h *Header) Roots() []object.Ref { return h.roots }

// SetRoots replaces the footer root references.
func (h *Header) SetRoots(ids ...uint32) {
	h.roots = h.roots[:0]
	for _, id := range ids {
		h.roots = append(h.roots, object.NewRef(id))
	}
}

// DeclaredBlocks returns the block count the header was read with. Blocks
// are appended with AppendLoadedBlock until NumBlocks matches it.
func (h *Header) DeclaredBlocks() uint32 { return h.readCount }

// ParseMagic extracts the version from a magic line.
func ParseMagic(line string) (version.FileVersion, bool, error) {
	var rest string
	nds := false
	switch {
	case strings.HasPrefix(line, magicGamebryo):
		rest = line[len(magicGamebryo):]
	case strings.HasPrefix(line, magicNetImmerse):
		rest = line[len(magicNetImmerse):]
	case strings.HasPrefix(line, magicNDS):
		rest = line[len(magicNDS):]
		nds = true
	default:
		return version.VUnknown, false, fmt.Errorf("%w: %q", ErrInvalidMagic, truncate(line, 40))
	}

	v, err := version.ParseFileVersion(rest)
	if err != nil {
		return version.VUnknown, nds, fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	return v, nds, nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Sync reads or writes the header. When reading, the version parsed from the
// magic line and version fields is installed into the stream as soon as it is
// known so the remaining fields are laid out for it.
func (h *Header) Sync(s *stream.Stream) error {
	if s.IsReading() {
		h.valid = false
		if err := h.readVersion(s); err != nil {
			return err
		}
	} else {
		h.writeVersion(s)
	}

	v := h.version
	if h.isBethesdaStream() {
		sv := v.Stream()
		stream.Sync(s, &sv)
		v.SetStream(sv)
		h.ExportInfo.sync(s)
	}

	numBlocks := len(h.blocks)
	if s.IsReading() {
		numBlocks = int(h.readCount)
	}

	if v.File() >= version.V5_0_0_1 {
		h.syncBlockTypes(s, numBlocks)
	}
	if v.File() >= version.V20_2_0_5 {
		if s.IsWriting() {
			stream.Resize(&h.blockSizes, numBlocks)
		}
		stream.SyncVectorN(s, &h.blockSizes, numBlocks)
	}
	if v.File() >= version.V20_1_0_1 {
		h.syncStrings(s)
	}
	if v.File() >= version.V5_0_0_6 {
		stream.SyncVector[uint32](s, &h.Groups)
	}

	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to sync header: %w", err)
	}
	if s.IsReading() {
		h.blocks = make([]object.NiObject, 0, numBlocks)
		h.valid = true
	}
	return nil
}

func (h *Header) isBethesdaStream() bool {
	v := h.version
	return (v.File() == version.V10_0_1_2 || v.File() == version.V20_2_0_7 || v.File() == version.V20_0_0_5 ||
		(v.File() >= version.V10_1_0_0 && v.File() <= version.V20_0_0_4 && v.User() <= 11)) && v.User() >= 3
}

func (h *Header) readVersion(s *stream.Stream) error {
	var line string
	s.SyncLine(&line)
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read magic line: %w", err)
	}

	file, nds, err := ParseMagic(line)
	if err != nil {
		return err
	}
	// Older files address blocks by memory pointer instead of index.
	if file < MinFileVersion {
		return fmt.Errorf("%w: %s is older than %s", ErrUnsupportedVersion, file, MinFileVersion)
	}

	h.version = version.New(file, 0, 0)
	s.SetVersion(h.version)

	var binary uint32
	stream.Sync(s, &binary)
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read version fields: %w", err)
	}
	if version.FileVersion(binary) != file {
		return fmt.Errorf("%w: magic line says %s, version field says %s",
			ErrUnsupportedVersion, file, version.FileVersion(binary))
	}
	if nds {
		var ndsVersion uint32
		stream.Sync(s, &ndsVersion)
		h.version.SetNDS(ndsVersion)
	}
	if file >= version.V20_0_0_3 {
		stream.Sync(s, &h.Endian)
		if h.Endian != EndianLittle {
			return fmt.Errorf("%w: big-endian files are not supported", ErrUnsupportedVersion)
		}
	}
	if file >= version.V10_0_1_8 {
		var user uint32
		stream.Sync(s, &user)
		h.version.SetUser(user)
	}
	stream.Sync(s, &h.readCount)
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read version fields: %w", err)
	}
	// Every block takes at least one byte, in the type index table or the
	// block itself.
	if !s.CanHold(int(h.readCount), 1) {
		return fmt.Errorf("failed to read block count: %w", s.Err())
	}
	return nil
}

func (h *Header) writeVersion(s *stream.Stream) {
	v := h.version
	line := v.HeaderString()
	s.SyncLine(&line)

	file := uint32(v.File())
	stream.Sync(s, &file)
	if v.NDS() != 0 {
		nds := v.NDS()
		stream.Sync(s, &nds)
	}
	if v.File() >= version.V20_0_0_3 {
		endian := EndianLittle
		stream.Sync(s, &endian)
	}
	if v.File() >= version.V10_0_1_8 {
		user := v.User()
		stream.Sync(s, &user)
	}
	count := uint32(len(h.blocks))
	stream.Sync(s, &count)
}

func (h *Header) syncBlockTypes(s *stream.Stream, numBlocks int) {
	count := uint16(len(h.blockTypes))
	n := stream.SyncCount(s, &count, len(h.blockTypes))
	if s.IsReading() {
		if !s.CanHold(n, 4) {
			return
		}
		h.blockTypes = make([]string, n)
	}
	for i := range h.blockTypes {
		object.SyncString(s, &h.blockTypes[i])
	}

	stream.SyncVectorN(s, &h.blockTypeIndices, numBlocks)

	// Files from 20.2.0.5 flag some indices with the high bit; it carries no
	// meaning for the block layout.
	if s.IsReading() {
		for i, idx := range h.blockTypeIndices {
			h.blockTypeIndices[i] = idx &^ 0x8000
		}
	}
}

func (h *Header) syncStrings(s *stream.Stream) {
	count := uint32(len(h.strings))
	n := stream.SyncCount(s, &count, len(h.strings))

	if s.IsWriting() {
		h.maxStringLen = 0
		for _, str := range h.strings {
			h.maxStringLen = max(h.maxStringLen, uint32(len(str)))
		}
	}
	stream.Sync(s, &h.maxStringLen)

	if s.IsReading() {
		if !s.CanHold(n, 4) {
			return
		}
		h.strings = make([]string, n)
	}
	for i := range h.strings {
		object.SyncString(s, &h.strings[i])
	}
}

// MaxStringLen returns the longest string length recorded in the table.
func (h *Header) MaxStringLen() uint32 { return h.maxStringLen }
