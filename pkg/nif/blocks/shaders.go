package blocks

import (
	"math"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
)

// BSShaderTextureSet lists the texture paths of a lighting shader.
type BSShaderTextureSet struct {
	object.Base
	Textures []string
}

func (*BSShaderTextureSet) BlockName() string { return "BSShaderTextureSet" }

// NewBSShaderTextureSet returns a set with the slot count the version
// expects.
func NewBSShaderTextureSet(streamVersion uint32) *BSShaderTextureSet {
	n := 9
	switch {
	case streamVersion >= 130:
		n = 10
	case streamVersion <= 34:
		n = 6
	}
	return &BSShaderTextureSet{Textures: make([]string, n)}
}

func (t *BSShaderTextureSet) Sync(s *stream.Stream) {
	var n uint32
	count := stream.SyncCount(s, &n, len(t.Textures))
	if s.IsReading() && !s.CanHold(count, 4) {
		t.Textures = nil
		return
	}
	stream.Resize(&t.Textures, count)
	for i := range t.Textures {
		s.SyncSizedString(&t.Textures[i], 4)
	}
}

// Lighting shader types
const (
	ShaderDefault            uint32 = 0
	ShaderEnvironmentMap     uint32 = 1
	ShaderGlowShader         uint32 = 2
	ShaderParallax           uint32 = 3
	ShaderFaceTint           uint32 = 4
	ShaderSkinTint           uint32 = 5
	ShaderHairTint           uint32 = 6
	ShaderParallaxOcc        uint32 = 7
	ShaderMultiTexLand       uint32 = 8
	ShaderLODLand            uint32 = 9
	ShaderMultiLayerParallax uint32 = 11
	ShaderTreeAnim           uint32 = 12
	ShaderMultiIndexSnow     uint32 = 14
	ShaderLODObjectsHD       uint32 = 15
	ShaderEyeEnvmap          uint32 = 16
)

// BSShaderProperty is the root of Bethesda shader properties. Files up to
// Fallout 3 store the legacy flag block; Skyrim and later store the two
// shader flag words, or CRC lists from stream 132 on, and the UV transform.
type BSShaderProperty struct {
	NiProperty

	LegacyFlags      uint16
	LegacyShaderType uint32
	LegacyFlags1     uint32
	LegacyFlags2     uint32
	EnvMapScale      float32

	ShaderFlags1 uint32
	ShaderFlags2 uint32
	SF1          []uint32
	SF2          []uint32
	UVOffset     types.Vector2
	UVScale      types.Vector2
}

// AsShader exposes the embedded BSShaderProperty.
func (p *BSShaderProperty) AsShader() *BSShaderProperty { return p }

func (p *BSShaderProperty) Sync(s *stream.Stream) {
	p.NiProperty.Sync(s)
	v := s.Version()

	if v.Stream() <= 34 {
		stream.Sync(s, &p.LegacyFlags)
		stream.Sync(s, &p.LegacyShaderType)
		stream.Sync(s, &p.LegacyFlags1)
		stream.Sync(s, &p.LegacyFlags2)
		stream.Sync(s, &p.EnvMapScale)
		return
	}

	if v.Stream() < 132 {
		stream.Sync(s, &p.ShaderFlags1)
		stream.Sync(s, &p.ShaderFlags2)
	} else {
		var n1, n2 uint32
		c1 := stream.SyncCount(s, &n1, len(p.SF1))
		c2 := 0
		if v.Stream() >= 152 {
			c2 = stream.SyncCount(s, &n2, len(p.SF2))
		}
		stream.SyncVectorN(s, &p.SF1, c1)
		stream.SyncVectorN(s, &p.SF2, c2)
	}
	stream.Sync(s, &p.UVOffset)
	stream.Sync(s, &p.UVScale)
}

// HasSF1 reports whether flag is set in the first shader flag word.
func (p *BSShaderProperty) HasSF1(flag uint32) bool { return p.ShaderFlags1&flag != 0 }

// HasSF2 reports whether flag is set in the second shader flag word.
func (p *BSShaderProperty) HasSF2(flag uint32) bool { return p.ShaderFlags2&flag != 0 }

// Selected shader flag bits
const (
	SF1Specular       uint32 = 1 << 0
	SF1Skinned        uint32 = 1 << 1
	SF1Environment    uint32 = 1 << 7
	SF1ModelSpaceNorm uint32 = 1 << 12
	SF2DoubleSided    uint32 = 1 << 4
	SF2VertexColors   uint32 = 1 << 5
	SF2GlowMap        uint32 = 1 << 6
)

// WetnessParams are the Fallout 4 wetness shader parameters.
type WetnessParams struct {
	SpecScale    float32
	SpecPower    float32
	MinVar       float32
	EnvMapScale  float32
	FresnelPower float32
	Metalness    float32
	Unknown1     float32
	Unknown2     float32
}

func (w *WetnessParams) Sync(s *stream.Stream) {
	v := s.Version().Stream()
	stream.Sync(s, &w.SpecScale)
	stream.Sync(s, &w.SpecPower)
	stream.Sync(s, &w.MinVar)
	if v == 130 {
		stream.Sync(s, &w.EnvMapScale)
	}
	stream.Sync(s, &w.FresnelPower)
	stream.Sync(s, &w.Metalness)
	if v > 130 {
		stream.Sync(s, &w.Unknown1)
	}
	if v == 155 {
		stream.Sync(s, &w.Unknown2)
	}
}

// LuminanceParams are the Fallout 76 emittance parameters.
type LuminanceParams struct {
	LumEmittance     float32
	ExposureOffset   float32
	FinalExposureMin float32
	FinalExposureMax float32
}

// TranslucencyParams are the Fallout 76 subsurface parameters.
type TranslucencyParams struct {
	SubsurfaceColor   types.Color3
	TransmissiveScale float32
	Turbulence        float32
	ThickObject       uint8
	MixAlbedo         uint8
}

// BSLightingShaderProperty is the main Skyrim and Fallout 4 material. Its
// shader type precedes the name in the object header.
type BSLightingShaderProperty struct {
	BSShaderProperty
	TextureSetRef           object.BlockRef[BSShaderTextureSet]
	EmissiveColor           types.Color3
	EmissiveMultiple        float32
	RootMaterial            StringRef
	TextureClampMode        uint32
	Alpha                   float32
	RefractionStrength      float32
	Glossiness              float32
	SpecularColor           types.Color3
	SpecularStrength        float32
	LightingEffect1         float32
	LightingEffect2         float32
	SubsurfaceRolloff       float32
	RimlightPower           float32
	BacklightPower          float32
	GrayscaleToPaletteScale float32
	FresnelPower            float32
	Wetness                 WetnessParams
	Luminance               LuminanceParams
	DoTranslucency          bool
	Translucency            TranslucencyParams
	TextureArrays           [][]string

	EnvironmentMapScale         float32
	UseSSR                      bool
	WetnessUseSSR               bool
	SkinTintColor               types.Color3
	SkinTintAlpha               float32
	HairTintColor               types.Color3
	MaxPasses                   float32
	Scale                       float32
	ParallaxInnerLayerThickness float32
	ParallaxRefractionScale     float32
	ParallaxInnerLayerTexScale  types.Vector2
	ParallaxEnvMapStrength      float32
	SparkleParams               types.Vector4
	EyeCubemapScale             float32
	LeftEyeReflectionCenter     types.Vector3
	RightEyeReflectionCenter    types.Vector3
}

func (*BSLightingShaderProperty) BlockName() string { return "BSLightingShaderProperty" }

// NewBSLightingShaderProperty returns a default lighting shader.
func NewBSLightingShaderProperty() *BSLightingShaderProperty {
	p := &BSLightingShaderProperty{
		EmissiveMultiple:    1,
		TextureClampMode:    3,
		Alpha:               1,
		Glossiness:          1,
		SpecularColor:       types.Color3{R: 1, G: 1, B: 1},
		SpecularStrength:    1,
		LightingEffect1:     0.3,
		LightingEffect2:     2,
		EnvironmentMapScale: 1,
	}
	p.UVScale = types.Vector2{U: 1, V: 1}
	p.hasShaderType = true
	return p
}

func (p *BSLightingShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	v := s.Version().Stream()

	p.TextureSetRef.Sync(s)
	stream.Sync(s, &p.EmissiveColor)
	stream.Sync(s, &p.EmissiveMultiple)
	if v >= 130 {
		p.RootMaterial.Sync(s)
	}
	stream.Sync(s, &p.TextureClampMode)
	stream.Sync(s, &p.Alpha)
	stream.Sync(s, &p.RefractionStrength)
	stream.Sync(s, &p.Glossiness)
	stream.Sync(s, &p.SpecularColor)
	stream.Sync(s, &p.SpecularStrength)

	if v < 130 {
		stream.Sync(s, &p.LightingEffect1)
		stream.Sync(s, &p.LightingEffect2)
	}
	if v >= 130 && v <= 139 {
		stream.Sync(s, &p.SubsurfaceRolloff)
		stream.Sync(s, &p.RimlightPower)
		if p.RimlightPower == math.MaxFloat32 {
			stream.Sync(s, &p.BacklightPower)
		}
	}
	if v >= 130 {
		stream.Sync(s, &p.GrayscaleToPaletteScale)
		stream.Sync(s, &p.FresnelPower)
		p.Wetness.Sync(s)
	}
	if v == 155 {
		stream.Sync(s, &p.Luminance)
		s.SyncByteBool(&p.DoTranslucency)
		if p.DoTranslucency {
			stream.Sync(s, &p.Translucency)
		}
		p.syncTextureArrays(s)
	}

	switch p.ShaderType {
	case ShaderEnvironmentMap:
		stream.Sync(s, &p.EnvironmentMapScale)
		if v >= 130 {
			s.SyncByteBool(&p.UseSSR)
			s.SyncByteBool(&p.WetnessUseSSR)
		}
	case ShaderSkinTint:
		stream.Sync(s, &p.SkinTintColor)
		if v == 155 {
			stream.Sync(s, &p.SkinTintAlpha)
		}
	case ShaderHairTint:
		if v < 130 {
			stream.Sync(s, &p.HairTintColor)
		}
	case ShaderParallaxOcc:
		stream.Sync(s, &p.MaxPasses)
		stream.Sync(s, &p.Scale)
	case ShaderMultiLayerParallax:
		stream.Sync(s, &p.ParallaxInnerLayerThickness)
		stream.Sync(s, &p.ParallaxRefractionScale)
		stream.Sync(s, &p.ParallaxInnerLayerTexScale)
		stream.Sync(s, &p.ParallaxEnvMapStrength)
	case ShaderMultiIndexSnow:
		stream.Sync(s, &p.SparkleParams)
	case ShaderEyeEnvmap:
		stream.Sync(s, &p.EyeCubemapScale)
		stream.Sync(s, &p.LeftEyeReflectionCenter)
		stream.Sync(s, &p.RightEyeReflectionCenter)
	}
}

func (p *BSLightingShaderProperty) syncTextureArrays(s *stream.Stream) {
	has := len(p.TextureArrays) > 0
	s.SyncByteBool(&has)
	if !has {
		if s.IsReading() {
			p.TextureArrays = nil
		}
		return
	}
	var n uint32
	count := stream.SyncCount(s, &n, len(p.TextureArrays))
	if s.IsReading() && !s.CanHold(count, 4) {
		p.TextureArrays = nil
		return
	}
	stream.Resize(&p.TextureArrays, count)
	for i := range p.TextureArrays {
		var m uint32
		texCount := stream.SyncCount(s, &m, len(p.TextureArrays[i]))
		if s.IsReading() && !s.CanHold(texCount, 4) {
			p.TextureArrays[i] = nil
			return
		}
		stream.Resize(&p.TextureArrays[i], texCount)
		for j := range p.TextureArrays[i] {
			s.SyncSizedString(&p.TextureArrays[i][j], 4)
		}
	}
}

func (p *BSLightingShaderProperty) ChildRefs(refs []*Ref) []*Ref {
	refs = p.BSShaderProperty.ChildRefs(refs)
	return append(refs, &p.TextureSetRef.Ref)
}

func (p *BSLightingShaderProperty) StringRefs(refs []*StringRef) []*StringRef {
	refs = p.BSShaderProperty.StringRefs(refs)
	return append(refs, &p.RootMaterial)
}

// BSEffectShaderProperty is the unlit effect material.
type BSEffectShaderProperty struct {
	BSShaderProperty
	SourceTexture       string
	TextureClampMode    uint8
	LightingInfluence   uint8
	EnvMapMinLOD        uint8
	Unused              uint8
	FalloffStartAngle   float32
	FalloffStopAngle    float32
	FalloffStartOpacity float32
	FalloffStopOpacity  float32
	RefractionPower     float32
	BaseColor           types.Color4
	BaseColorScale      float32
	SoftFalloffDepth    float32
	GreyscaleTexture    string
	EnvMapTexture       string
	NormalTexture       string
	EnvMaskTexture      string
	EnvironmentMapScale float32
	ReflectanceTexture  string
	LightingTexture     string
	EmittanceColor      types.Color3
	EmitGradientTexture string
	Luminance           LuminanceParams
}

func (*BSEffectShaderProperty) BlockName() string { return "BSEffectShaderProperty" }

func (p *BSEffectShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	v := s.Version().Stream()

	s.SyncSizedString(&p.SourceTexture, 4)
	stream.Sync(s, &p.TextureClampMode)
	stream.Sync(s, &p.LightingInfluence)
	stream.Sync(s, &p.EnvMapMinLOD)
	stream.Sync(s, &p.Unused)
	stream.Sync(s, &p.FalloffStartAngle)
	stream.Sync(s, &p.FalloffStopAngle)
	stream.Sync(s, &p.FalloffStartOpacity)
	stream.Sync(s, &p.FalloffStopOpacity)
	if v == 155 {
		stream.Sync(s, &p.RefractionPower)
	}
	stream.Sync(s, &p.BaseColor)
	stream.Sync(s, &p.BaseColorScale)
	stream.Sync(s, &p.SoftFalloffDepth)
	s.SyncSizedString(&p.GreyscaleTexture, 4)

	if v >= 130 {
		s.SyncSizedString(&p.EnvMapTexture, 4)
		s.SyncSizedString(&p.NormalTexture, 4)
		s.SyncSizedString(&p.EnvMaskTexture, 4)
		stream.Sync(s, &p.EnvironmentMapScale)
	}
	if v == 155 {
		s.SyncSizedString(&p.ReflectanceTexture, 4)
		s.SyncSizedString(&p.LightingTexture, 4)
		stream.Sync(s, &p.EmittanceColor)
		s.SyncSizedString(&p.EmitGradientTexture, 4)
		stream.Sync(s, &p.Luminance)
	}
}

// BSWaterShaderProperty is the Skyrim water material.
type BSWaterShaderProperty struct {
	BSShaderProperty
	WaterFlags uint32
}

func (*BSWaterShaderProperty) BlockName() string { return "BSWaterShaderProperty" }

func (p *BSWaterShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	stream.Sync(s, &p.WaterFlags)
}

// BSSkyShaderProperty is the Skyrim sky material.
type BSSkyShaderProperty struct {
	BSShaderProperty
	SourceTexture string
	SkyObjectType uint32
}

func (*BSSkyShaderProperty) BlockName() string { return "BSSkyShaderProperty" }

func (p *BSSkyShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	s.SyncSizedString(&p.SourceTexture, 4)
	stream.Sync(s, &p.SkyObjectType)
}

// BSShaderLightingProperty is the root of the Fallout 3 lit shaders.
type BSShaderLightingProperty struct {
	BSShaderProperty
	TextureClampMode uint32
}

func (p *BSShaderLightingProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	if s.Version().Stream() <= 34 {
		stream.Sync(s, &p.TextureClampMode)
	}
}

// BSShaderPPLightingProperty is the Fallout 3 per-pixel lit shader.
type BSShaderPPLightingProperty struct {
	BSShaderLightingProperty
	TextureSetRef        object.BlockRef[BSShaderTextureSet]
	RefractionStrength   float32
	RefractionFirePeriod int32
	ParallaxMaxPasses    float32
	ParallaxScale        float32
	EmissiveColor        types.Color4
}

func (*BSShaderPPLightingProperty) BlockName() string { return "BSShaderPPLightingProperty" }

func (p *BSShaderPPLightingProperty) Sync(s *stream.Stream) {
	p.BSShaderLightingProperty.Sync(s)
	v := s.Version()
	p.TextureSetRef.Sync(s)
	if v.Stream() > 14 {
		stream.Sync(s, &p.RefractionStrength)
		stream.Sync(s, &p.RefractionFirePeriod)
	}
	if v.Stream() > 24 {
		stream.Sync(s, &p.ParallaxMaxPasses)
		stream.Sync(s, &p.ParallaxScale)
	}
	if v.Stream() > 34 {
		stream.Sync(s, &p.EmissiveColor)
	}
}

func (p *BSShaderPPLightingProperty) ChildRefs(refs []*Ref) []*Ref {
	refs = p.BSShaderLightingProperty.ChildRefs(refs)
	return append(refs, &p.TextureSetRef.Ref)
}

// Lighting30ShaderProperty shares the per-pixel lit layout.
type Lighting30ShaderProperty struct{ BSShaderPPLightingProperty }

func (*Lighting30ShaderProperty) BlockName() string { return "Lighting30ShaderProperty" }

// BSShaderNoLightingProperty is the Fallout 3 unlit shader.
type BSShaderNoLightingProperty struct {
	BSShaderLightingProperty
	FileName            string
	FalloffStartAngle   float32
	FalloffStopAngle    float32
	FalloffStartOpacity float32
	FalloffStopOpacity  float32
}

func (*BSShaderNoLightingProperty) BlockName() string { return "BSShaderNoLightingProperty" }

func (p *BSShaderNoLightingProperty) Sync(s *stream.Stream) {
	p.BSShaderLightingProperty.Sync(s)
	s.SyncSizedString(&p.FileName, 4)
	if s.Version().Stream() > 26 {
		stream.Sync(s, &p.FalloffStartAngle)
		stream.Sync(s, &p.FalloffStopAngle)
		stream.Sync(s, &p.FalloffStartOpacity)
		stream.Sync(s, &p.FalloffStopOpacity)
	}
}

// SkyShaderProperty is the Fallout 3 sky shader.
type SkyShaderProperty struct {
	BSShaderLightingProperty
	FileName      string
	SkyObjectType uint32
}

func (*SkyShaderProperty) BlockName() string { return "SkyShaderProperty" }

func (p *SkyShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderLightingProperty.Sync(s)
	s.SyncSizedString(&p.FileName, 4)
	stream.Sync(s, &p.SkyObjectType)
}

// TileShaderProperty is the Fallout 3 HUD tile shader.
type TileShaderProperty struct {
	BSShaderLightingProperty
	FileName string
}

func (*TileShaderProperty) BlockName() string { return "TileShaderProperty" }

func (p *TileShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderLightingProperty.Sync(s)
	s.SyncSizedString(&p.FileName, 4)
}

// TallGrassShaderProperty is the Fallout 3 grass shader.
type TallGrassShaderProperty struct {
	BSShaderProperty
	FileName string
}

func (*TallGrassShaderProperty) BlockName() string { return "TallGrassShaderProperty" }

func (p *TallGrassShaderProperty) Sync(s *stream.Stream) {
	p.BSShaderProperty.Sync(s)
	s.SyncSizedString(&p.FileName, 4)
}

// WaterShaderProperty is the Fallout 3 water shader.
type WaterShaderProperty struct{ BSShaderProperty }

func (*WaterShaderProperty) BlockName() string { return "WaterShaderProperty" }

// HairShaderProperty is the Fallout 3 hair shader.
type HairShaderProperty struct{ BSShaderProperty }

func (*HairShaderProperty) BlockName() string { return "HairShaderProperty" }

// DistantLODShaderProperty is the Fallout 3 distant LOD shader.
type DistantLODShaderProperty struct{ BSShaderProperty }

func (*DistantLODShaderProperty) BlockName() string { return "DistantLODShaderProperty" }

// BSDistantTreeShaderProperty is the Fallout 3 distant tree shader.
type BSDistantTreeShaderProperty struct{ BSShaderProperty }

func (*BSDistantTreeShaderProperty) BlockName() string { return "BSDistantTreeShaderProperty" }

// VolumetricFogShaderProperty is the Fallout 3 fog volume shader.
type VolumetricFogShaderProperty struct{ BSShaderProperty }

func (*VolumetricFogShaderProperty) BlockName() string { return "VolumetricFogShaderProperty" }
