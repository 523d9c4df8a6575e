package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiAlphaProperty sets blending and alpha testing.
type NiAlphaProperty struct {
	NiProperty
	Flags     uint16
	Threshold uint8
}

func (*NiAlphaProperty) BlockName() string { return "NiAlphaProperty" }

func (p *NiAlphaProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	stream.Sync(s, &p.Flags)
	stream.Sync(s, &p.Threshold)
}

// NiFlagProperty is the shared layout of properties that only hold flags.
type NiFlagProperty struct {
	NiProperty
	Flags uint16
}

func (p *NiFlagProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	stream.Sync(s, &p.Flags)
}

// NiSpecularProperty toggles specular lighting.
type NiSpecularProperty struct{ NiFlagProperty }

func (*NiSpecularProperty) BlockName() string { return "NiSpecularProperty" }

// NiWireframeProperty toggles wireframe rendering.
type NiWireframeProperty struct{ NiFlagProperty }

func (*NiWireframeProperty) BlockName() string { return "NiWireframeProperty" }

// NiDitherProperty toggles dithering.
type NiDitherProperty struct{ NiFlagProperty }

func (*NiDitherProperty) BlockName() string { return "NiDitherProperty" }

// NiShadeProperty toggles smooth shading.
type NiShadeProperty struct{ NiFlagProperty }

func (*NiShadeProperty) BlockName() string { return "NiShadeProperty" }

// NiMaterialProperty holds the fixed-function material colors.
type NiMaterialProperty struct {
	NiProperty
	Flags            uint16
	AmbientColor     types.Color3
	DiffuseColor     types.Color3
	SpecularColor    types.Color3
	EmissiveColor    types.Color3
	Glossiness       float32
	Alpha            float32
	EmissiveMultiple float32
}

func (*NiMaterialProperty) BlockName() string { return "NiMaterialProperty" }

func (p *NiMaterialProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	v := s.Version()
	if v.File() >= version.V3_0 && v.File() <= version.V10_0_1_2 {
		stream.Sync(s, &p.Flags)
	}
	if v.Stream() < 26 {
		stream.Sync(s, &p.AmbientColor)
		stream.Sync(s, &p.DiffuseColor)
	}
	stream.Sync(s, &p.SpecularColor)
	stream.Sync(s, &p.EmissiveColor)
	stream.Sync(s, &p.Glossiness)
	stream.Sync(s, &p.Alpha)
	if v.Stream() > 21 {
		stream.Sync(s, &p.EmissiveMultiple)
	}
}

// NiStencilProperty configures the stencil buffer.
type NiStencilProperty struct {
	NiProperty
	Flags          uint16
	StencilEnabled uint8
	StencilFunc    uint32
	StencilRef     uint32
	StencilMask    uint32
	FailAction     uint32
	ZFailAction    uint32
	PassAction     uint32
	DrawMode       uint32
}

func (*NiStencilProperty) BlockName() string { return "NiStencilProperty" }

func (p *NiStencilProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	v := s.Version()
	if v.File() <= version.V10_0_1_2 {
		stream.Sync(s, &p.Flags)
	}
	if v.File() <= version.V20_0_0_5 {
		stream.Sync(s, &p.StencilEnabled)
		stream.Sync(s, &p.StencilFunc)
		stream.Sync(s, &p.StencilRef)
		stream.Sync(s, &p.StencilMask)
		stream.Sync(s, &p.FailAction)
		stream.Sync(s, &p.ZFailAction)
		stream.Sync(s, &p.PassAction)
		stream.Sync(s, &p.DrawMode)
	}
	if v.File() >= version.V20_1_0_3 {
		stream.Sync(s, &p.Flags)
		stream.Sync(s, &p.StencilRef)
		stream.Sync(s, &p.StencilMask)
	}
}

// NiZBufferProperty configures depth testing.
type NiZBufferProperty struct {
	NiProperty
	Flags    uint16
	Function uint32
}

func (*NiZBufferProperty) BlockName() string { return "NiZBufferProperty" }

func (p *NiZBufferProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	stream.Sync(s, &p.Flags)
	if v := s.Version().File(); v >= version.V4_1_0_12 && v <= version.V20_0_0_5 {
		stream.Sync(s, &p.Function)
	}
}

// NiVertexColorProperty selects how vertex colors are applied.
type NiVertexColorProperty struct {
	NiProperty
	Flags        uint16
	VertexMode   uint32
	LightingMode uint32
}

func (*NiVertexColorProperty) BlockName() string { return "NiVertexColorProperty" }

func (p *NiVertexColorProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	stream.Sync(s, &p.Flags)
	if s.Version().File() <= version.V20_0_0_5 {
		stream.Sync(s, &p.VertexMode)
		stream.Sync(s, &p.LightingMode)
	}
}

// NiFogProperty configures distance fog.
type NiFogProperty struct {
	NiProperty
	Flags    uint16
	FogDepth float32
	FogColor types.Color3
}

func (*NiFogProperty) BlockName() string { return "NiFogProperty" }

func (p *NiFogProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	stream.Sync(s, &p.Flags)
	stream.Sync(s, &p.FogDepth)
	stream.Sync(s, &p.FogColor)
}

// NiTexture is the root of texture sources.
type NiTexture struct {
	NiObjectNET
}

// NiSourceTexture names an external texture file or holds pixel data.
type NiSourceTexture struct {
	NiTexture
	UseExternal          uint8
	FileName             StringRef
	DataRef              object.BlockRef[NiObject]
	PixelLayout          uint32
	MipMapFormat         uint32
	AlphaFormat          uint32
	IsStatic             uint8
	DirectRender         bool
	PersistentRenderData bool
}

func (*NiSourceTexture) BlockName() string { return "NiSourceTexture" }

// NewNiSourceTexture returns a static external texture with default
// formats.
func NewNiSourceTexture() *NiSourceTexture {
	return &NiSourceTexture{
		UseExternal:  1,
		PixelLayout:  6,
		MipMapFormat: 2,
		AlphaFormat:  3,
		IsStatic:     1,
		DirectRender: true,
	}
}

func (t *NiSourceTexture) Sync(s *stream.Stream) {
	t.NiObjectNET.Sync(s)
	v := s.Version()

	stream.Sync(s, &t.UseExternal)
	if t.UseExternal != 0 {
		t.FileName.Sync(s)
		if v.File() >= version.V10_1_0_0 {
			t.DataRef.Sync(s)
		}
	} else {
		if v.File() >= version.V10_1_0_0 {
			t.FileName.Sync(s)
		}
		t.DataRef.Sync(s)
	}

	stream.Sync(s, &t.PixelLayout)
	stream.Sync(s, &t.MipMapFormat)
	stream.Sync(s, &t.AlphaFormat)
	stream.Sync(s, &t.IsStatic)
	if v.File() >= version.V10_1_0_104 {
		s.SyncBool(&t.DirectRender)
	}
	if v.File() >= version.V20_2_0_5 {
		s.SyncBool(&t.PersistentRenderData)
	}
}

func (t *NiSourceTexture) ChildRefs(refs []*Ref) []*Ref {
	refs = t.NiObjectNET.ChildRefs(refs)
	return append(refs, &t.DataRef.Ref)
}

func (t *NiSourceTexture) StringRefs(refs []*StringRef) []*StringRef {
	refs = t.NiObjectNET.StringRefs(refs)
	return append(refs, &t.FileName)
}

// TexTransform is the optional UV transform of a TexDesc.
type TexTransform struct {
	Translation types.Vector2
	Scale       types.Vector2
	Rotation    float32
	Method      uint32
	Center      types.Vector2
}

// TexDesc describes one texture slot of NiTexturingProperty.
type TexDesc struct {
	SourceRef    object.BlockRef[NiSourceTexture]
	ClampMode    uint32
	FilterMode   uint32
	Flags        uint16
	UVSet        uint32
	PS2L         int16
	PS2K         int16
	Unknown1     uint16
	HasTransform bool
	Transform    TexTransform
}

func (d *TexDesc) Sync(s *stream.Stream) {
	v := s.Version().File()
	d.SourceRef.Sync(s)
	if v <= version.V20_0_0_5 {
		stream.Sync(s, &d.ClampMode)
		stream.Sync(s, &d.FilterMode)
	}
	if v >= version.V20_1_0_3 {
		stream.Sync(s, &d.Flags)
	}
	if v <= version.V20_0_0_5 {
		stream.Sync(s, &d.UVSet)
	}
	if v <= version.V10_4_0_1 {
		stream.Sync(s, &d.PS2L)
		stream.Sync(s, &d.PS2K)
	}
	if v <= version.V4_1_0_12 {
		stream.Sync(s, &d.Unknown1)
	}
	if v >= version.V10_1_0_0 {
		s.SyncBool(&d.HasTransform)
		if d.HasTransform {
			stream.Sync(s, &d.Transform)
		}
	}
}

// TexSlot is an optional TexDesc.
type TexSlot struct {
	Has  bool
	Desc TexDesc
}

func (t *TexSlot) Sync(s *stream.Stream) {
	s.SyncBool(&t.Has)
	if t.Has {
		t.Desc.Sync(s)
	}
}

// ShaderTexDesc is an extra shader map slot.
type ShaderTexDesc struct {
	TexSlot
	MapID uint32
}

func (t *ShaderTexDesc) Sync(s *stream.Stream) {
	t.TexSlot.Sync(s)
	if t.Has {
		stream.Sync(s, &t.MapID)
	}
}

// NiTexturingProperty holds the fixed-function texture slots.
type NiTexturingProperty struct {
	NiProperty
	Flags          uint16
	ApplyMode      uint32
	TextureCount   uint32
	Base           TexSlot
	Dark           TexSlot
	Detail         TexSlot
	Gloss          TexSlot
	Glow           TexSlot
	BumpMap        TexSlot
	LumaScale      float32
	LumaOffset     float32
	BumpMatrix     types.Matrix22
	Normal         TexSlot
	Parallax       TexSlot
	ParallaxOffset float32
	Decals         [4]TexSlot
	ShaderTextures []ShaderTexDesc
}

func (*NiTexturingProperty) BlockName() string { return "NiTexturingProperty" }

func (p *NiTexturingProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	v := s.Version().File()

	if v <= version.V10_0_1_2 || v >= version.V20_1_0_2 {
		stream.Sync(s, &p.Flags)
	}
	if v >= version.V3_3_0_13 && v <= version.V20_1_0_1 {
		stream.Sync(s, &p.ApplyMode)
	}
	stream.Sync(s, &p.TextureCount)

	p.Base.Sync(s)
	p.Dark.Sync(s)
	p.Detail.Sync(s)
	p.Gloss.Sync(s)
	p.Glow.Sync(s)
	p.BumpMap.Sync(s)
	if p.BumpMap.Has {
		stream.Sync(s, &p.LumaScale)
		stream.Sync(s, &p.LumaOffset)
		stream.Sync(s, &p.BumpMatrix)
	}
	if v >= version.V20_2_0_5 {
		p.Normal.Sync(s)
		p.Parallax.Sync(s)
		if p.Parallax.Has {
			stream.Sync(s, &p.ParallaxOffset)
		}
	}

	first := uint32(6)
	if v >= version.V20_2_0_5 {
		first = 8
	}
	for i := range p.Decals {
		if p.TextureCount > first+uint32(i) {
			p.Decals[i].Sync(s)
		}
	}

	if v >= version.V10_0_1_0 {
		stream.SyncEach[uint32](s, &p.ShaderTextures)
	}
}

func (p *NiTexturingProperty) slots() []*TexSlot {
	slots := []*TexSlot{&p.Base, &p.Dark, &p.Detail, &p.Gloss, &p.Glow, &p.BumpMap, &p.Normal, &p.Parallax}
	for i := range p.Decals {
		slots = append(slots, &p.Decals[i])
	}
	for i := range p.ShaderTextures {
		slots = append(slots, &p.ShaderTextures[i].TexSlot)
	}
	return slots
}

func (p *NiTexturingProperty) ChildRefs(refs []*Ref) []*Ref {
	refs = p.NiProperty.ChildRefs(refs)
	for _, slot := range p.slots() {
		refs = append(refs, &slot.Desc.SourceRef.Ref)
	}
	return refs
}

// PixelChannel describes one channel of a pixel format.
type PixelChannel struct {
	Type       uint32
	Convention uint32
	Bits       uint8
	IsSigned   bool
}

func (c *PixelChannel) Sync(s *stream.Stream) {
	stream.Sync(s, &c.Type)
	stream.Sync(s, &c.Convention)
	stream.Sync(s, &c.Bits)
	s.SyncBool(&c.IsSigned)
}

// NiPixelFormat is the layout shared by blocks holding raw pixels. Files
// before 10.4.0.2 describe it with channel masks, later ones with channel
// records.
type NiPixelFormat struct {
	object.Base
	PixelFormat    uint32
	RedMask        uint32
	GreenMask      uint32
	BlueMask       uint32
	AlphaMask      uint32
	BitsPerPixel   uint32
	OldFastCompare [8]uint8
	Tiling         uint32
	BitsPerPixel2  uint8
	RendererHint   uint32
	ExtraData      uint32
	Flags          uint8
	SRGBSpace      bool
	Channels       [4]PixelChannel
}

func (f *NiPixelFormat) Sync(s *stream.Stream) {
	v := s.Version().File()
	stream.Sync(s, &f.PixelFormat)
	if v <= version.V10_4_0_1 {
		stream.Sync(s, &f.RedMask)
		stream.Sync(s, &f.GreenMask)
		stream.Sync(s, &f.BlueMask)
		stream.Sync(s, &f.AlphaMask)
		stream.Sync(s, &f.BitsPerPixel)
		stream.Sync(s, &f.OldFastCompare)
		if v >= version.V10_1_0_0 {
			stream.Sync(s, &f.Tiling)
		}
		return
	}

	stream.Sync(s, &f.BitsPerPixel2)
	stream.Sync(s, &f.RendererHint)
	stream.Sync(s, &f.ExtraData)
	stream.Sync(s, &f.Flags)
	stream.Sync(s, &f.Tiling)
	if v >= version.ToFile(20, 3, 0, 4) {
		s.SyncBool(&f.SRGBSpace)
	}
	for i := range f.Channels {
		f.Channels[i].Sync(s)
	}
}

// MipMap locates one mip level inside the pixel data.
type MipMap struct {
	Width  uint32
	Height uint32
	Offset uint32
}

// NiPixelData holds texture pixels stored inside the file.
type NiPixelData struct {
	NiPixelFormat
	PaletteRef    object.BlockRef[NiPalette]
	BytesPerPixel uint32
	MipMaps       []MipMap
	NumPixels     uint32
	NumFaces      uint32
	PixelData     []uint8
}

func (*NiPixelData) BlockName() string { return "NiPixelData" }

func (d *NiPixelData) Sync(s *stream.Stream) {
	d.NiPixelFormat.Sync(s)
	d.PaletteRef.Sync(s)
	var numMipMaps uint32
	n := stream.SyncCount(s, &numMipMaps, len(d.MipMaps))
	stream.Sync(s, &d.BytesPerPixel)
	stream.SyncVectorN(s, &d.MipMaps, n)
	stream.Sync(s, &d.NumPixels)

	size := int(d.NumPixels)
	if s.Version().File() > version.V10_4_0_1 {
		stream.Sync(s, &d.NumFaces)
		size *= int(d.NumFaces)
	}
	stream.SyncVectorN(s, &d.PixelData, size)
}

func (d *NiPixelData) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &d.PaletteRef.Ref)
}

// NiPersistentSrcTextureRendererData is pixel data prepared for a specific
// renderer.
type NiPersistentSrcTextureRendererData struct {
	NiPixelFormat
	PaletteRef    object.BlockRef[NiPalette]
	BytesPerPixel uint32
	MipMaps       []MipMap
	NumPixels     uint32
	PadNumPixels  uint32
	NumFaces      uint32
	Platform      uint32
	PixelData     []uint8
}

func (*NiPersistentSrcTextureRendererData) BlockName() string {
	return "NiPersistentSrcTextureRendererData"
}

func (d *NiPersistentSrcTextureRendererData) Sync(s *stream.Stream) {
	d.NiPixelFormat.Sync(s)
	d.PaletteRef.Sync(s)
	var numMipMaps uint32
	n := stream.SyncCount(s, &numMipMaps, len(d.MipMaps))
	stream.Sync(s, &d.BytesPerPixel)
	stream.SyncVectorN(s, &d.MipMaps, n)
	stream.Sync(s, &d.NumPixels)
	stream.Sync(s, &d.PadNumPixels)
	stream.Sync(s, &d.NumFaces)
	stream.Sync(s, &d.Platform)
	stream.SyncVectorN(s, &d.PixelData, int(d.NumPixels)*int(d.NumFaces))
}

func (d *NiPersistentSrcTextureRendererData) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &d.PaletteRef.Ref)
}

// NiPalette is a color table for palettized pixel data.
type NiPalette struct {
	object.Base
	HasAlpha uint8
	Palette  []types.ByteColor4
}

func (*NiPalette) BlockName() string { return "NiPalette" }

func (p *NiPalette) Sync(s *stream.Stream) {
	stream.Sync(s, &p.HasAlpha)
	stream.SyncVector[uint32](s, &p.Palette)
}
