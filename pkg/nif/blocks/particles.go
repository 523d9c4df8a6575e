package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// bs202 reports the Bethesda 20.2.0.7 particle layout, which drops every
// per-particle array.
func bs202(v *version.NiVersion) bool {
	return v.File() == version.V20_2_0_7 && v.Stream() > 0
}

// NiParticlesData extends geometry data with per-particle attributes.
type NiParticlesData struct {
	NiGeometryData
	NumParticles         uint16
	ParticleRadius       float32
	HasRadii             bool
	Radii                []float32
	NumActive            uint16
	HasSizes             bool
	Sizes                []float32
	HasRotations         bool
	Rotations            []types.Quaternion
	HasRotationAngles    bool
	RotationAngles       []float32
	HasRotationAxes      bool
	RotationAxes         []types.Vector3
	HasTextureIndices    bool
	SubtextureOffsets    []types.Vector4
	AspectRatio          float32
	AspectFlags          uint16
	SpeedToAspectAspect2 float32
	SpeedToAspectSpeed1  float32
	SpeedToAspectSpeed2  float32
}

// NewNiParticlesData returns particle data that skips per-vertex arrays in
// Bethesda files.
func NewNiParticlesData() *NiParticlesData {
	d := &NiParticlesData{}
	d.isPSys = true
	return d
}

func (*NiParticlesData) BlockName() string { return "NiParticlesData" }

func (d *NiParticlesData) Sync(s *stream.Stream) {
	d.NiGeometryData.Sync(s)
	v := s.Version()
	bs := bs202(v)
	n := int(d.NumVertices)

	if v.File() <= version.V4_0_0_2 {
		stream.Sync(s, &d.NumParticles)
	}
	if v.File() <= version.V10_0_1_0 {
		stream.Sync(s, &d.ParticleRadius)
	}
	if v.File() >= version.V10_1_0_0 && !bs {
		s.SyncBool(&d.HasRadii)
		if d.HasRadii {
			stream.SyncVectorN(s, &d.Radii, n)
		}
	}
	stream.Sync(s, &d.NumActive)
	if !bs {
		s.SyncBool(&d.HasSizes)
		if d.HasSizes {
			stream.SyncVectorN(s, &d.Sizes, n)
		}
	}
	if v.File() >= version.V10_0_1_0 && !bs {
		s.SyncBool(&d.HasRotations)
		if d.HasRotations {
			stream.SyncVectorN(s, &d.Rotations, n)
		}
	}
	if v.File() >= version.V20_0_0_4 {
		s.SyncBool(&d.HasRotationAngles)
		if d.HasRotationAngles && !bs {
			stream.SyncVectorN(s, &d.RotationAngles, n)
		}
		s.SyncBool(&d.HasRotationAxes)
		if d.HasRotationAxes && !bs {
			stream.SyncVectorN(s, &d.RotationAxes, n)
		}
	}
	if !bs {
		return
	}

	s.SyncBool(&d.HasTextureIndices)
	if v.Stream() > 34 {
		stream.SyncVector[uint32](s, &d.SubtextureOffsets)
	} else {
		stream.SyncVector[uint8](s, &d.SubtextureOffsets)
	}
	if v.Stream() > 34 {
		stream.Sync(s, &d.AspectRatio)
		stream.Sync(s, &d.AspectFlags)
		stream.Sync(s, &d.SpeedToAspectAspect2)
		stream.Sync(s, &d.SpeedToAspectSpeed1)
		stream.Sync(s, &d.SpeedToAspectSpeed2)
	}
}

// NiParticleInfo is the simulation state of one particle.
type NiParticleInfo struct {
	Velocity        types.Vector3
	RotationAxis    types.Vector3
	Age             float32
	LifeSpan        float32
	LastUpdate      float32
	SpawnGeneration uint16
	Code            uint16
}

func (p *NiParticleInfo) Sync(s *stream.Stream) {
	stream.Sync(s, &p.Velocity)
	if s.Version().File() <= version.V10_4_0_1 {
		stream.Sync(s, &p.RotationAxis)
	}
	stream.Sync(s, &p.Age)
	stream.Sync(s, &p.LifeSpan)
	stream.Sync(s, &p.LastUpdate)
	stream.Sync(s, &p.SpawnGeneration)
	stream.Sync(s, &p.Code)
}

// NiPSysData is the data of a particle system.
type NiPSysData struct {
	NiParticlesData
	ParticleInfo       []NiParticleInfo
	HasRotationSpeeds  bool
	RotationSpeeds     []float32
	NumAddedParticles  uint16
	AddedParticlesBase uint16
}

// NewNiPSysData returns particle system data with the particle layout
// enabled.
func NewNiPSysData() *NiPSysData {
	d := &NiPSysData{}
	d.isPSys = true
	return d
}

func (*NiPSysData) BlockName() string { return "NiPSysData" }

func (d *NiPSysData) Sync(s *stream.Stream) {
	d.NiParticlesData.Sync(s)
	v := s.Version()
	if bs202(v) {
		return
	}
	n := int(d.NumVertices)
	if s.IsReading() && !s.CanHold(n, 28) {
		d.ParticleInfo = nil
		return
	}
	stream.SyncEachN(s, &d.ParticleInfo, n)
	if v.File() >= version.V20_0_0_2 {
		s.SyncBool(&d.HasRotationSpeeds)
		if d.HasRotationSpeeds {
			stream.SyncVectorN(s, &d.RotationSpeeds, n)
		}
	}
	stream.Sync(s, &d.NumAddedParticles)
	stream.Sync(s, &d.AddedParticlesBase)
}

// NiMeshPSysData is particle data whose particles are meshes.
type NiMeshPSysData struct {
	NiPSysData
	DefaultPoolSize   uint32
	FillPoolsOnLoad   bool
	Generations       []uint32
	ParticleMeshesRef object.BlockRef[NiNode]
}

// NewNiMeshPSysData returns mesh particle data with the particle layout
// enabled.
func NewNiMeshPSysData() *NiMeshPSysData {
	d := &NiMeshPSysData{}
	d.isPSys = true
	return d
}

func (*NiMeshPSysData) BlockName() string { return "NiMeshPSysData" }

func (d *NiMeshPSysData) Sync(s *stream.Stream) {
	d.NiPSysData.Sync(s)
	if s.Version().File() >= version.V10_2_0_0 {
		stream.Sync(s, &d.DefaultPoolSize)
		s.SyncBool(&d.FillPoolsOnLoad)
		stream.SyncVector[uint32](s, &d.Generations)
	}
	d.ParticleMeshesRef.Sync(s)
}

func (d *NiMeshPSysData) ChildRefs(refs []*Ref) []*Ref {
	refs = d.NiPSysData.ChildRefs(refs)
	return append(refs, &d.ParticleMeshesRef.Ref)
}

// BSStripPSysData is the data of a strip particle system.
type BSStripPSysData struct {
	NiPSysData
	MaxPointCount uint16
	StartCapSize  float32
	EndCapSize    float32
	DoZPrepass    bool
}

// NewBSStripPSysData returns strip particle data with the particle layout
// enabled.
func NewBSStripPSysData() *BSStripPSysData {
	d := &BSStripPSysData{}
	d.isPSys = true
	return d
}

func (*BSStripPSysData) BlockName() string { return "BSStripPSysData" }

func (d *BSStripPSysData) Sync(s *stream.Stream) {
	d.NiPSysData.Sync(s)
	stream.Sync(s, &d.MaxPointCount)
	stream.Sync(s, &d.StartCapSize)
	stream.Sync(s, &d.EndCapSize)
	s.SyncByteBool(&d.DoZPrepass)
}

// NiParticles is the root of particle geometry.
type NiParticles struct{ NiGeometry }

func (*NiParticles) BlockName() string { return "NiParticles" }

// NiParticleSystem renders particles driven by modifiers. Skyrim SE and
// later store it with the BSTriShape style header instead of NiGeometry.
type NiParticleSystem struct {
	NiParticles
	Bounds      types.BoundingSphere
	BoundMinMax [6]float32
	VertexDesc  types.VertexDesc
	FarBegin    uint16
	FarEnd      uint16
	NearBegin   uint16
	NearEnd     uint16
	WorldSpace  bool
	Modifiers   object.BlockRefArray[NiPSysModifier]
}

func (*NiParticleSystem) BlockName() string { return "NiParticleSystem" }

func (p *NiParticleSystem) Sync(s *stream.Stream) {
	v := s.Version()
	if v.Stream() >= 100 {
		p.NiAVObject.Sync(s)
		stream.Sync(s, &p.Bounds)
		if v.Stream() == 155 {
			stream.Sync(s, &p.BoundMinMax)
		}
		p.SkinInstanceRef.Sync(s)
		p.ShaderPropertyRef.Sync(s)
		p.AlphaPropertyRef.Sync(s)
		stream.Sync(s, &p.VertexDesc)
	} else {
		p.NiGeometry.Sync(s)
	}

	if v.Stream() >= 83 {
		stream.Sync(s, &p.FarBegin)
		stream.Sync(s, &p.FarEnd)
		stream.Sync(s, &p.NearBegin)
		stream.Sync(s, &p.NearEnd)
	}
	if v.Stream() >= 100 {
		p.DataRef.Sync(s)
	}
	if v.File() >= version.V10_1_0_0 {
		s.SyncBool(&p.WorldSpace)
		p.Modifiers.Sync(s)
	}
}

func (p *NiParticleSystem) ChildRefs(refs []*Ref) []*Ref {
	refs = p.NiParticles.ChildRefs(refs)
	return p.Modifiers.ChildRefs(refs)
}

// NiMeshParticleSystem is a particle system of meshes.
type NiMeshParticleSystem struct{ NiParticleSystem }

func (*NiMeshParticleSystem) BlockName() string { return "NiMeshParticleSystem" }

// BSStripParticleSystem is a particle system rendered as strips.
type BSStripParticleSystem struct{ NiParticleSystem }

func (*BSStripParticleSystem) BlockName() string { return "BSStripParticleSystem" }
