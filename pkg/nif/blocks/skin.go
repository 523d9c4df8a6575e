package blocks

import (
	"encoding/binary"
	"slices"

	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// NiSkinInstance binds a shape to its skeleton.
type NiSkinInstance struct {
	object.Base
	DataRef          object.BlockRef[NiSkinData]
	SkinPartitionRef object.BlockRef[NiSkinPartition]
	SkeletonRoot     object.BlockPtr[NiNode]
	Bones            object.BlockPtrArray[NiNode]
}

func (*NiSkinInstance) BlockName() string { return "NiSkinInstance" }

// AsSkinInstance exposes the embedded NiSkinInstance.
func (i *NiSkinInstance) AsSkinInstance() *NiSkinInstance { return i }

func (i *NiSkinInstance) Sync(s *stream.Stream) {
	i.DataRef.Sync(s)
	if s.Version().File() >= version.V10_1_0_101 {
		i.SkinPartitionRef.Sync(s)
	}
	i.SkeletonRoot.Sync(s)
	i.Bones.Sync(s)
}

func (i *NiSkinInstance) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref, &i.SkinPartitionRef.Ref)
}

func (i *NiSkinInstance) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = append(ptrs, &i.SkeletonRoot.Ref)
	return i.Bones.AppendPtrs(ptrs)
}

// BodyPartition names the body part a skin partition covers.
type BodyPartition struct {
	Flags  uint16
	PartID uint16
}

// BSDismemberSkinInstance adds body-part information per skin partition.
type BSDismemberSkinInstance struct {
	NiSkinInstance
	Partitions []BodyPartition
}

func (*BSDismemberSkinInstance) BlockName() string { return "BSDismemberSkinInstance" }

func (i *BSDismemberSkinInstance) Sync(s *stream.Stream) {
	i.NiSkinInstance.Sync(s)
	stream.SyncVector[uint32](s, &i.Partitions)
}

// SkinWeight is one vertex influence of a bone.
type SkinWeight struct {
	Index  uint16
	Weight float32
}

// SkinBoneData is the bind transform and influences of one bone.
type SkinBoneData struct {
	Transform   types.MatTransform
	Bounds      types.BoundingSphere
	NumVertices uint16
	Weights     []SkinWeight
}

// syncSkinTransform syncs a transform stored rotation first.
func syncSkinTransform(s *stream.Stream, t *types.MatTransform) {
	stream.Sync(s, &t.Rotation)
	stream.Sync(s, &t.Translation)
	stream.Sync(s, &t.Scale)
}

// NiSkinData holds bind poses and per-bone vertex weights.
type NiSkinData struct {
	object.Base
	SkinTransform    types.MatTransform
	SkinPartitionRef object.BlockRef[NiSkinPartition]
	HasVertexWeights bool
	Bones            []SkinBoneData
}

func (*NiSkinData) BlockName() string { return "NiSkinData" }

func (d *NiSkinData) Sync(s *stream.Stream) {
	v := s.Version()
	syncSkinTransform(s, &d.SkinTransform)

	var numBones uint32
	n := stream.SyncCount(s, &numBones, len(d.Bones))
	if v.File() >= version.V4_0_0_2 && v.File() <= version.V10_1_0_0 {
		d.SkinPartitionRef.Sync(s)
	}
	if v.File() >= version.V4_2_1_0 {
		s.SyncByteBool(&d.HasVertexWeights)
	} else {
		d.HasVertexWeights = true
	}

	if s.IsReading() && !s.CanHold(n, 70) {
		d.Bones = nil
		return
	}
	stream.Resize(&d.Bones, n)
	for i := range d.Bones {
		b := &d.Bones[i]
		syncSkinTransform(s, &b.Transform)
		stream.Sync(s, &b.Bounds)
		if s.IsWriting() && d.HasVertexWeights {
			b.NumVertices = uint16(len(b.Weights))
		}
		stream.Sync(s, &b.NumVertices)
		if d.HasVertexWeights {
			stream.SyncVectorN(s, &b.Weights, int(b.NumVertices))
		}
	}
}

func (d *NiSkinData) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &d.SkinPartitionRef.Ref)
}

// SkinPartitionBlock is one bone group of a skin partition. Triangles index
// into VertexMap; TrueTriangles index the shape's own vertex list. Either
// form may be stale after an edit; regenerate it from the other with the
// NiSkinPartition helpers.
type SkinPartitionBlock struct {
	NumVertices         uint16
	NumTriangles        uint16
	Bones               []uint16
	NumWeightsPerVertex uint16
	HasVertexMap        bool
	VertexMap           []uint16
	HasVertexWeights    bool
	VertexWeights       [][]float32
	StripLengths        []uint16
	HasFaces            bool
	Strips              [][]uint16
	Triangles           []types.Triangle
	HasBoneIndices      bool
	BoneIndices         [][]uint8
	LODLevel            uint8
	GlobalVB            bool
	VertexDesc          types.VertexDesc
	TrueTriangles       []types.Triangle
}

func syncNested[T any](s *stream.Stream, v *[][]T, n, m int) {
	var zero T
	if s.IsReading() && !s.CanHold(n*m, max(binary.Size(zero), 1)) {
		*v = nil
		return
	}
	stream.Resize(v, n)
	for i := range *v {
		stream.SyncVectorN(s, &(*v)[i], m)
	}
}

func (p *SkinPartitionBlock) updateCounts() {
	if p.HasVertexMap {
		p.NumVertices = uint16(len(p.VertexMap))
	}
	if !p.HasFaces {
		return
	}
	p.StripLengths = p.StripLengths[:0]
	for _, strip := range p.Strips {
		p.StripLengths = append(p.StripLengths, uint16(len(strip)))
	}
	if len(p.Strips) > 0 {
		var n int
		for _, strip := range p.Strips {
			n += max(len(strip)-2, 0)
		}
		p.NumTriangles = uint16(n)
	} else {
		p.NumTriangles = uint16(len(p.Triangles))
	}
}

func (p *SkinPartitionBlock) Sync(s *stream.Stream) {
	v := s.Version()
	if s.IsWriting() {
		p.updateCounts()
	}

	stream.Sync(s, &p.NumVertices)
	stream.Sync(s, &p.NumTriangles)
	var numBones, numStrips uint16
	nb := stream.SyncCount(s, &numBones, len(p.Bones))
	ns := stream.SyncCount(s, &numStrips, len(p.StripLengths))
	stream.Sync(s, &p.NumWeightsPerVertex)
	stream.SyncVectorN(s, &p.Bones, nb)

	nv, nw := int(p.NumVertices), int(p.NumWeightsPerVertex)
	hasFlags := v.File() >= version.V10_0_1_0

	if hasFlags {
		s.SyncBool(&p.HasVertexMap)
	} else {
		p.HasVertexMap = true
	}
	if p.HasVertexMap {
		stream.SyncVectorN(s, &p.VertexMap, nv)
	}

	if hasFlags {
		s.SyncBool(&p.HasVertexWeights)
	} else {
		p.HasVertexWeights = true
	}
	if p.HasVertexWeights {
		syncNested(s, &p.VertexWeights, nv, nw)
	}

	stream.SyncVectorN(s, &p.StripLengths, ns)

	if hasFlags {
		s.SyncBool(&p.HasFaces)
	} else {
		p.HasFaces = true
	}
	if p.HasFaces {
		if ns > 0 {
			// A truncated read leaves StripLengths shorter than the count.
			stream.Resize(&p.Strips, len(p.StripLengths))
			for i := range p.Strips {
				stream.SyncVectorN(s, &p.Strips[i], int(p.StripLengths[i]))
			}
		} else {
			stream.SyncVectorN(s, &p.Triangles, int(p.NumTriangles))
		}
	}

	s.SyncBool(&p.HasBoneIndices)
	if p.HasBoneIndices {
		syncNested(s, &p.BoneIndices, nv, nw)
	}

	if v.Stream() > 34 {
		stream.Sync(s, &p.LODLevel)
		s.SyncByteBool(&p.GlobalVB)
	}
	if v.IsSSE() {
		stream.Sync(s, &p.VertexDesc)
		stream.SyncVectorN(s, &p.TrueTriangles, int(p.NumTriangles))
	}
}

// ConvertStripsToTriangles replaces strips with an equivalent triangle list.
func (p *SkinPartitionBlock) ConvertStripsToTriangles() {
	if len(p.Strips) == 0 {
		return
	}
	data := NiTriStripsData{Points: p.Strips}
	p.Triangles = data.StripsToTriangles()
	p.Strips = nil
	p.StripLengths = nil
	p.NumTriangles = uint16(len(p.Triangles))
}

// NiSkinPartition splits a skinned shape into bone groups. In Skyrim SE the
// shape's vertex data lives here instead of on the BSTriShape.
type NiSkinPartition struct {
	object.Base
	DataSize   uint32
	VertexSize uint32
	VertexDesc types.VertexDesc
	VertexData []BSVertexData
	Partitions []SkinPartitionBlock

	// TriParts maps each shape triangle to its partition, -1 when
	// unassigned. It is derived, never synced.
	TriParts []int
}

func (*NiSkinPartition) BlockName() string { return "NiSkinPartition" }

func (p *NiSkinPartition) Sync(s *stream.Stream) {
	var numPartitions uint32
	n := stream.SyncCount(s, &numPartitions, len(p.Partitions))

	if s.Version().IsSSE() {
		if s.IsWriting() {
			p.VertexSize = p.VertexDesc.Size()
			p.DataSize = p.VertexSize * uint32(len(p.VertexData))
		}
		stream.Sync(s, &p.DataSize)
		stream.Sync(s, &p.VertexSize)
		stream.Sync(s, &p.VertexDesc)

		count := 0
		if p.VertexSize > 0 {
			count = int(p.DataSize / p.VertexSize)
		}
		if s.IsReading() && !s.CanHold(count, int(max(p.VertexSize, 1))) {
			p.VertexData = nil
		} else {
			stream.Resize(&p.VertexData, count)
			for i := range p.VertexData {
				p.VertexData[i].SyncVertex(s, p.VertexDesc, true)
			}
		}
	}

	if s.Err() != nil {
		p.Partitions = nil
		return
	}
	stream.SyncEachN(s, &p.Partitions, n)
}

// ConvertStripsToTriangles converts every stripped partition.
func (p *NiSkinPartition) ConvertStripsToTriangles() {
	for i := range p.Partitions {
		p.Partitions[i].ConvertStripsToTriangles()
	}
}

// GenerateTrueTrianglesFromMappedTriangles rebuilds TrueTriangles by passing
// each mapped triangle through its partition's vertex map. Triangles with an
// index outside the map are dropped.
func (p *NiSkinPartition) GenerateTrueTrianglesFromMappedTriangles() {
	for i := range p.Partitions {
		part := &p.Partitions[i]
		part.ConvertStripsToTriangles()
		part.TrueTriangles = part.TrueTriangles[:0]
		vm := part.VertexMap
		for _, t := range part.Triangles {
			if int(t.P1) >= len(vm) || int(t.P2) >= len(vm) || int(t.P3) >= len(vm) {
				continue
			}
			part.TrueTriangles = append(part.TrueTriangles, types.Triangle{P1: vm[t.P1], P2: vm[t.P2], P3: vm[t.P3]})
		}
	}
}

// GenerateMappedTrianglesFromTrueTrianglesAndVertexMap rebuilds Triangles
// from TrueTriangles using the inverse of each partition's vertex map.
// Triangles that use a vertex missing from the map are dropped.
func (p *NiSkinPartition) GenerateMappedTrianglesFromTrueTrianglesAndVertexMap() {
	for i := range p.Partitions {
		part := &p.Partitions[i]
		inverse := make(map[uint16]uint16, len(part.VertexMap))
		for j, idx := range part.VertexMap {
			inverse[idx] = uint16(j)
		}
		part.Strips = nil
		part.StripLengths = nil
		part.Triangles = part.Triangles[:0]
		for _, t := range part.TrueTriangles {
			a, ok1 := inverse[t.P1]
			b, ok2 := inverse[t.P2]
			c, ok3 := inverse[t.P3]
			if ok1 && ok2 && ok3 {
				part.Triangles = append(part.Triangles, types.Triangle{P1: a, P2: b, P3: c})
			}
		}
		part.NumTriangles = uint16(len(part.Triangles))
	}
}

// PrepareTriParts assigns each of the shape's triangles to the partition
// whose true triangles contain it. It reports whether every triangle was
// assigned.
func (p *NiSkinPartition) PrepareTriParts(shapeTris []types.Triangle) bool {
	index := make(map[types.Triangle]int, len(shapeTris))
	for i, t := range shapeTris {
		if _, ok := index[t.Rotated()]; !ok {
			index[t.Rotated()] = i
		}
	}

	p.TriParts = make([]int, len(shapeTris))
	for i := range p.TriParts {
		p.TriParts[i] = -1
	}
	for pi := range p.Partitions {
		for _, t := range p.Partitions[pi].TrueTriangles {
			if ti, ok := index[t.Rotated()]; ok {
				p.TriParts[ti] = pi
			}
		}
	}
	return !slices.Contains(p.TriParts, -1)
}

// PrepareVertexMapsAndTriangles rebuilds every partition's true triangles,
// vertex map, weights and bone indices from TriParts. Vertices keep their
// existing position in a map when they are still used; new ones are added
// in the order they first appear.
func (p *NiSkinPartition) PrepareVertexMapsAndTriangles(shapeTris []types.Triangle) {
	for pi := range p.Partitions {
		part := &p.Partitions[pi]

		part.TrueTriangles = part.TrueTriangles[:0]
		used := make(map[uint16]bool)
		for ti, t := range shapeTris {
			if ti < len(p.TriParts) && p.TriParts[ti] == pi {
				part.TrueTriangles = append(part.TrueTriangles, t)
				used[t.P1], used[t.P2], used[t.P3] = true, true, true
			}
		}

		oldPos := make(map[uint16]int, len(part.VertexMap))
		var vertexMap []uint16
		for j, idx := range part.VertexMap {
			oldPos[idx] = j
			if used[idx] {
				vertexMap = append(vertexMap, idx)
				delete(used, idx)
			}
		}
		for _, t := range part.TrueTriangles {
			for _, idx := range [3]uint16{t.P1, t.P2, t.P3} {
				if used[idx] {
					vertexMap = append(vertexMap, idx)
					delete(used, idx)
				}
			}
		}

		nw := int(part.NumWeightsPerVertex)
		weights := make([][]float32, len(vertexMap))
		boneIndices := make([][]uint8, len(vertexMap))
		for j, idx := range vertexMap {
			weights[j] = make([]float32, nw)
			boneIndices[j] = make([]uint8, nw)
			if old, ok := oldPos[idx]; ok {
				if old < len(part.VertexWeights) {
					copy(weights[j], part.VertexWeights[old])
				}
				if old < len(part.BoneIndices) {
					copy(boneIndices[j], part.BoneIndices[old])
				}
			}
		}

		part.VertexMap = vertexMap
		part.HasVertexMap = true
		part.NumVertices = uint16(len(vertexMap))
		if part.HasVertexWeights {
			part.VertexWeights = weights
		}
		if part.HasBoneIndices {
			part.BoneIndices = boneIndices
		}
		part.HasFaces = true
	}
	p.GenerateMappedTrianglesFromTrueTrianglesAndVertexMap()
}

// BSSkinBoneTransform is the bind data of one bone in BSSkin::BoneData.
type BSSkinBoneTransform struct {
	Bounds      types.BoundingSphere
	Rotation    types.Matrix3
	Translation types.Vector3
	Scale       float32
}

// BSSkinBoneData holds the Fallout 4 bind poses.
type BSSkinBoneData struct {
	object.Base
	Bones []BSSkinBoneTransform
}

func (*BSSkinBoneData) BlockName() string { return "BSSkin::BoneData" }

func (d *BSSkinBoneData) Sync(s *stream.Stream) {
	stream.SyncVector[uint32](s, &d.Bones)
}

// BSSkinInstance binds a Fallout 4 shape to its skeleton.
type BSSkinInstance struct {
	object.Base
	SkeletonRoot object.BlockPtr[NiAVObject]
	DataRef      object.BlockRef[BSSkinBoneData]
	Bones        object.BlockPtrArray[NiNode]
	Scales       []types.Vector3
}

func (*BSSkinInstance) BlockName() string { return "BSSkin::Instance" }

func (i *BSSkinInstance) Sync(s *stream.Stream) {
	i.SkeletonRoot.Sync(s)
	i.DataRef.Sync(s)
	i.Bones.Sync(s)
	stream.SyncVector[uint32](s, &i.Scales)
}

func (i *BSSkinInstance) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &i.DataRef.Ref)
}

func (i *BSSkinInstance) Ptrs(ptrs []*Ref) []*Ref {
	ptrs = append(ptrs, &i.SkeletonRoot.Ref)
	return i.Bones.AppendPtrs(ptrs)
}
