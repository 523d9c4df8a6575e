// Package nif loads and saves NIF files. A File owns the header and every
// block; the header, blocks and object packages describe the format itself.
package nif

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/header"
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// File is a loaded or newly created NIF file.
type File struct {
	hdr *header.Header
}

// SaveOptions controls Save.
type SaveOptions struct {
	// SortBlocks reorders blocks depth first from the root before writing.
	SortBlocks bool
}

// DefaultSaveOptions returns the options Save uses.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{SortBlocks: true}
}

// Create returns a file for v holding a single root node named
// "Scene Root".
func Create(v *version.NiVersion) *File {
	f := &File{hdr: header.New(v)}
	root := &blocks.NiNode{}
	root.Name.Set("Scene Root")
	root.Transform = types.IdentityTransform()
	f.hdr.AddBlock(root)
	return f
}

// Header returns the block table.
func (f *File) Header() *header.Header { return f.hdr }

// Version returns the file version.
func (f *File) Version() *version.NiVersion { return f.hdr.Version() }

// Blocks returns every block in file order.
func (f *File) Blocks() []object.NiObject { return f.hdr.Blocks() }

// RootID returns the index of the first footer root, or NPOS.
func (f *File) RootID() uint32 {
	for _, r := range f.hdr.Roots() {
		if !r.IsEmpty() {
			return r.Index()
		}
	}
	return object.NPOS
}

// Root returns the root node, or nil when the first root is not a node.
func (f *File) Root() *blocks.NiNode {
	n, ok := header.GetBlock[blocks.Node](f.hdr, f.RootID())
	if !ok {
		return nil
	}
	return n.AsNode()
}

// LoadFile reads the file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return f, nil
}

// Load reads a file from r. Failures are reported as *LoadError. The whole
// input is buffered first, so counts read from the file are checked against
// the bytes actually left.
func Load(r io.Reader) (*File, error) {
	br, ok := r.(*bytes.Reader)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, newLoadError("failed to read input", err)
		}
		br = bytes.NewReader(data)
	}
	s := stream.NewReader(br, nil)
	hdr := header.New(nil)
	if err := hdr.Sync(s); err != nil {
		return nil, newLoadError("failed to read header", err)
	}

	v := hdr.Version()
	logger.Debug("read header",
		"version", v.String(), "user", v.User(), "stream", v.Stream(), "blocks", hdr.DeclaredBlocks())

	for i := uint32(0); i < hdr.DeclaredBlocks(); i++ {
		b, err := loadBlock(hdr, s, i)
		if err != nil {
			return nil, newLoadError(fmt.Sprintf("failed to read block %d", i), err)
		}
		hdr.AppendLoadedBlock(b)
	}

	if err := hdr.SyncFooter(s); err != nil {
		return nil, newLoadError("failed to read footer", err)
	}

	f := &File{hdr: hdr}
	hdr.FillStringRefs()
	f.PrepareData()
	return f, nil
}

// syncBlockPrefix handles what precedes a block payload: the inline type name
// of files without a type table and the zero separator of early 10.x files.
func syncBlockPrefix(s *stream.Stream, name *string) {
	v := s.Version()
	if v.File() < version.V5_0_0_1 {
		object.SyncString(s, name)
	}
	if v.File() >= version.V10_0_1_0 && v.File() < version.V10_2_0_0 {
		var sep uint32
		stream.Sync(s, &sep)
	}
}

func loadBlock(hdr *header.Header, s *stream.Stream, id uint32) (object.NiObject, error) {
	name := hdr.GetBlockTypeStringByID(id)
	syncBlockPrefix(s, &name)
	if err := s.Err(); err != nil {
		return nil, err
	}

	if !hdr.HasBlockSizes() {
		return blocks.Load(name, s)
	}

	// With sizes known each block is parsed from its own payload, so a
	// block this package cannot read does not derail the rest of the file.
	size := hdr.BlockSize(id)
	if !s.CanHold(int(size), 1) {
		return nil, s.Err()
	}
	payload := make([]byte, size)
	s.SyncBytes(payload)
	if err := s.Err(); err != nil {
		return nil, err
	}

	bs := stream.NewReader(bytes.NewReader(payload), s.Version())
	b, err := blocks.Load(name, bs)
	switch {
	case err != nil:
		logger.Debug("keeping block as raw data", "block", id, "type", name, "error", err)
	case bs.Remaining() != 0:
		logger.Warn("block size mismatch, keeping raw data",
			"block", id, "type", name, "size", size, "unread", bs.Remaining())
	default:
		return b, nil
	}
	return &blocks.NiUnknown{Name: name, Data: payload}, nil
}

// Save writes the file to w with DefaultSaveOptions.
func (f *File) Save(w io.Writer) error {
	return f.SaveWithOptions(w, DefaultSaveOptions())
}

// SaveWithOptions writes the file to w. The in-memory graph is left as it
// was, apart from block order when opts.SortBlocks is set.
func (f *File) SaveWithOptions(w io.Writer, opts SaveOptions) error {
	hdr := f.hdr
	v := hdr.Version()

	if opts.SortBlocks {
		if err := f.SortGraph(); err != nil {
			return fmt.Errorf("failed to sort blocks: %w", err)
		}
	}

	f.FinalizeData()
	defer f.PrepareData()
	hdr.UpdateHeaderStrings()

	// Block sizes precede the blocks, so blocks are written first.
	var body bytes.Buffer
	bs := stream.NewWriter(&body, v)
	for i, b := range hdr.Blocks() {
		name := b.BlockName()
		syncBlockPrefix(bs, &name)
		start := bs.Position()
		b.Sync(bs)
		hdr.SetBlockSize(uint32(i), uint32(bs.Position()-start))
	}
	if err := bs.Err(); err != nil {
		return fmt.Errorf("failed to write blocks: %w", err)
	}

	s := stream.NewWriter(w, v)
	if err := hdr.Sync(s); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	s.SyncBytes(body.Bytes())
	if err := hdr.SyncFooter(s); err != nil {
		return fmt.Errorf("failed to write footer: %w", err)
	}

	logger.Debug("saved file", "version", v.String(), "blocks", hdr.NumBlocks(), "bytes", s.Position())
	return nil
}

// SaveFile writes the file to path.
func (f *File) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := f.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
