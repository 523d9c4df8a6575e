// Package blocks implements the concrete NIF block types. Each type embeds
// its parent type and its Sync calls the parent's Sync before syncing its own
// fields, so parent fields always precede child fields on the wire.
package blocks

import (
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
	"github.com/deploymenttheory/go-nif/pkg/nif/types"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Shorthands used throughout the package.
type (
	Ref       = object.Ref
	StringRef = object.StringRef
)

// NiObjectNET is the root of every named, controllable block.
type NiObjectNET struct {
	object.Base
	// ShaderType is only present on BSLightingShaderProperty, ahead of
	// the name, in Skyrim and later files.
	ShaderType      uint32
	hasShaderType   bool
	Name            StringRef
	OldExtraDataRef object.BlockRef[NiExtraData]
	ExtraDataRefs   object.BlockRefArray[NiExtraData]
	ControllerRef   object.BlockRef[NiTimeController]
}

func (o *NiObjectNET) Sync(s *stream.Stream) {
	v := s.Version()
	if o.hasShaderType && v.Stream() >= 83 {
		stream.Sync(s, &o.ShaderType)
	}

	o.Name.Sync(s)

	if v.File() >= version.V3_0 && v.File() <= version.V4_2_2_0 {
		o.OldExtraDataRef.Sync(s)
	}
	if v.File() >= version.V10_0_1_0 {
		o.ExtraDataRefs.Sync(s)
	}
	if v.File() >= version.V3_0 {
		o.ControllerRef.Sync(s)
	}
}

func (o *NiObjectNET) ChildRefs(refs []*Ref) []*Ref {
	refs = append(refs, &o.OldExtraDataRef.Ref)
	refs = o.ExtraDataRefs.ChildRefs(refs)
	return append(refs, &o.ControllerRef.Ref)
}

func (o *NiObjectNET) StringRefs(refs []*StringRef) []*StringRef {
	return append(refs, &o.Name)
}

// AsObjectNET exposes the embedded NiObjectNET of any derived block.
func (o *NiObjectNET) AsObjectNET() *NiObjectNET { return o }

// BoundVolumeType selects the BoundingVolume variant.
type BoundVolumeType uint32

// Bound volume types
const (
	BoundVolumeBase      BoundVolumeType = 0xFFFFFFFF
	BoundVolumeSphere    BoundVolumeType = 0
	BoundVolumeBox       BoundVolumeType = 1
	BoundVolumeCapsule   BoundVolumeType = 2
	BoundVolumeUnion     BoundVolumeType = 4
	BoundVolumeHalfSpace BoundVolumeType = 5
)

// BoundingVolume is the pre-10.x collision volume stored on NiAVObject.
type BoundingVolume struct {
	Type BoundVolumeType

	Sphere types.BoundingSphere

	BoxCenter types.Vector3
	BoxAxis   [3]types.Vector3
	BoxExtent types.Vector3

	CapsuleCenter types.Vector3
	CapsuleOrigin types.Vector3
	CapsuleExtent float32
	CapsuleRadius float32

	Union []BoundingVolume

	PlaneNormal     types.Vector3
	PlaneConstant   float32
	HalfSpaceCenter types.Vector3
}

func (b *BoundingVolume) Sync(s *stream.Stream) {
	stream.Sync(s, (*uint32)(&b.Type))
	switch b.Type {
	case BoundVolumeSphere:
		stream.Sync(s, &b.Sphere)
	case BoundVolumeBox:
		stream.Sync(s, &b.BoxCenter)
		stream.Sync(s, &b.BoxAxis)
		stream.Sync(s, &b.BoxExtent)
	case BoundVolumeCapsule:
		stream.Sync(s, &b.CapsuleCenter)
		stream.Sync(s, &b.CapsuleOrigin)
		stream.Sync(s, &b.CapsuleExtent)
		stream.Sync(s, &b.CapsuleRadius)
	case BoundVolumeUnion:
		stream.SyncEach[uint32](s, &b.Union)
	case BoundVolumeHalfSpace:
		stream.Sync(s, &b.PlaneNormal)
		stream.Sync(s, &b.PlaneConstant)
		stream.Sync(s, &b.HalfSpaceCenter)
	}
}

// NiAVObject is the root of everything placed in the scene.
type NiAVObject struct {
	NiObjectNET
	Flags             uint32
	Transform         types.MatTransform
	Velocity          types.Vector3
	PropertyRefs      object.BlockRefArray[NiProperty]
	HasBoundingVolume bool
	BoundingVolume    BoundingVolume
	CollisionRef      object.BlockRef[NiCollisionObject]
}

func (o *NiAVObject) Sync(s *stream.Stream) {
	o.NiObjectNET.Sync(s)
	v := s.Version()

	if v.File() >= version.V3_0 {
		if v.Stream() <= 26 {
			flags := uint16(o.Flags)
			stream.Sync(s, &flags)
			o.Flags = uint32(flags)
		} else {
			stream.Sync(s, &o.Flags)
		}
	}

	stream.Sync(s, &o.Transform.Translation)
	stream.Sync(s, &o.Transform.Rotation)
	stream.Sync(s, &o.Transform.Scale)

	if v.File() <= version.V4_2_2_0 {
		stream.Sync(s, &o.Velocity)
	}
	if v.Stream() <= 34 {
		o.PropertyRefs.Sync(s)
	}
	if v.File() >= version.V3_0 && v.File() <= version.V4_2_2_0 {
		s.SyncBool(&o.HasBoundingVolume)
		if o.HasBoundingVolume {
			o.BoundingVolume.Sync(s)
		}
	}
	if v.File() >= version.V10_0_1_0 {
		o.CollisionRef.Sync(s)
	}
}

func (o *NiAVObject) ChildRefs(refs []*Ref) []*Ref {
	refs = o.NiObjectNET.ChildRefs(refs)
	refs = o.PropertyRefs.ChildRefs(refs)
	return append(refs, &o.CollisionRef.Ref)
}

// AsAVObject exposes the embedded NiAVObject of any derived block.
func (o *NiAVObject) AsAVObject() *NiAVObject { return o }

// NiProperty is the root of render state blocks.
type NiProperty struct {
	NiObjectNET
}

// AsProperty exposes the embedded NiProperty of any derived block.
func (p *NiProperty) AsProperty() *NiProperty { return p }

// NiExtraData is the root of metadata attached to NiObjectNET.
type NiExtraData struct {
	object.Base
	Name             StringRef
	NextExtraDataRef object.BlockRef[NiExtraData]
}

func (e *NiExtraData) Sync(s *stream.Stream) {
	v := s.Version()
	if v.File() >= version.V10_0_1_0 {
		e.Name.Sync(s)
	}
	if v.File() <= version.V4_2_2_0 {
		e.NextExtraDataRef.Sync(s)
	}
}

func (e *NiExtraData) ChildRefs(refs []*Ref) []*Ref {
	return append(refs, &e.NextExtraDataRef.Ref)
}

func (e *NiExtraData) StringRefs(refs []*StringRef) []*StringRef {
	return append(refs, &e.Name)
}

// AsExtraData exposes the embedded NiExtraData of any derived block.
func (e *NiExtraData) AsExtraData() *NiExtraData { return e }
