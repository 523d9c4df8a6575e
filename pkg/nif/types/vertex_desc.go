package types

// VertexAttribute indexes the offset nibbles of a VertexDesc.
type VertexAttribute uint8

// Vertex attributes in descriptor order
const (
	VAPosition VertexAttribute = iota
	VATexCoord0
	VATexCoord1
	VANormal
	VABinormal
	VAColor
	VASkinning
	VALandData
	VAEyeData
)

// VertexFlags are the feature bits stored in the high bits of a VertexDesc.
type VertexFlags uint16

// Vertex feature flags
const (
	VFVertex    VertexFlags = 1 << 0
	VFUV        VertexFlags = 1 << 1
	VFUV2       VertexFlags = 1 << 2
	VFNormal    VertexFlags = 1 << 3
	VFTangent   VertexFlags = 1 << 4
	VFColors    VertexFlags = 1 << 5
	VFSkinned   VertexFlags = 1 << 6
	VFLandData  VertexFlags = 1 << 7
	VFEyeData   VertexFlags = 1 << 8
	VFInstance  VertexFlags = 1 << 9
	VFFullPrec  VertexFlags = 1 << 10
	vertexFlags             = 44
)

// VertexDesc is the packed 64-bit vertex layout descriptor of BSTriShape and
// SSE skin partitions. The low nibble holds the vertex size in dwords, the
// next nine nibbles attribute offsets in dwords, and bits 44+ the flags.
type VertexDesc uint64

// Flags returns the feature flags.
func (d VertexDesc) Flags() VertexFlags { return VertexFlags(d >> vertexFlags) }

// HasFlag reports whether f is set.
func (d VertexDesc) HasFlag(f VertexFlags) bool { return d.Flags()&f != 0 }

// SetFlag sets f.
func (d *VertexDesc) SetFlag(f VertexFlags) { *d |= VertexDesc(f) << vertexFlags }

// RemoveFlag clears f.
func (d *VertexDesc) RemoveFlag(f VertexFlags) { *d &^= VertexDesc(f) << vertexFlags }

// SetFlags replaces all flags.
func (d *VertexDesc) SetFlags(f VertexFlags) {
	*d = (*d & (1<<vertexFlags - 1)) | VertexDesc(f)<<vertexFlags
}

// Size returns the vertex size in bytes.
func (d VertexDesc) Size() uint32 { return uint32(d&0xF) * 4 }

// SetSize stores a vertex size given in bytes.
func (d *VertexDesc) SetSize(size uint32) {
	*d = (*d &^ 0xF) | VertexDesc(size>>2)&0xF
}

// Offset returns the byte offset of attr inside a vertex.
func (d VertexDesc) Offset(attr VertexAttribute) uint32 {
	shift := 4 * (uint64(attr) + 1)
	return uint32((d>>shift)&0xF) * 4
}

// SetOffset stores the byte offset of attr.
func (d *VertexDesc) SetOffset(attr VertexAttribute, offset uint32) {
	shift := 4 * (uint64(attr) + 1)
	*d = (*d &^ (0xF << shift)) | (VertexDesc(offset>>2)&0xF)<<shift
}

// ClearOffsets zeroes all attribute offsets.
func (d *VertexDesc) ClearOffsets() {
	*d &^= VertexDesc(0xFFFFFFFFF) << 4
}

// Rebuild recomputes size and offsets from the flags. Positions are stored
// as floats when fullPrecision is set and halves otherwise.
func (d *VertexDesc) Rebuild(fullPrecision bool) {
	d.ClearOffsets()
	var off uint32

	if d.HasFlag(VFVertex) {
		d.SetOffset(VAPosition, off)
		if fullPrecision {
			off += 16
		} else {
			off += 8
		}
	}
	if d.HasFlag(VFUV) {
		d.SetOffset(VATexCoord0, off)
		off += 4
	}
	if d.HasFlag(VFUV2) {
		d.SetOffset(VATexCoord1, off)
		off += 4
	}
	if d.HasFlag(VFNormal) {
		d.SetOffset(VANormal, off)
		off += 4
		if d.HasFlag(VFTangent) {
			d.SetOffset(VABinormal, off)
			off += 4
		}
	}
	if d.HasFlag(VFColors) {
		d.SetOffset(VAColor, off)
		off += 4
	}
	if d.HasFlag(VFSkinned) {
		d.SetOffset(VASkinning, off)
		off += 12
	}
	if d.HasFlag(VFEyeData) {
		d.SetOffset(VAEyeData, off)
		off += 4
	}
	d.SetSize(off)
}
