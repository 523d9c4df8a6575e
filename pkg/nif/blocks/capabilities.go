package blocks

import "github.com/deploymenttheory/go-nif/pkg/nif/object"

// Capability interfaces. Each accessor is declared once on a parent type and
// promoted to every type that embeds it, so "is this block some kind of X"
// is a plain type assertion against the interface.

// ObjectNET is implemented by every named, controllable block.
type ObjectNET interface {
	object.NiObject
	AsObjectNET() *NiObjectNET
}

// AVObject is implemented by every scene object.
type AVObject interface {
	object.NiObject
	AsAVObject() *NiAVObject
}

// Node is implemented by NiNode and every node subtype.
type Node interface {
	object.NiObject
	AsNode() *NiNode
}

// Shape is implemented by every renderable geometry block.
type Shape interface {
	AVObject
	AsShape() *NiShape
}

// Property is implemented by every render state block.
type Property interface {
	object.NiObject
	AsProperty() *NiProperty
}

// ExtraData is implemented by every extra data block.
type ExtraData interface {
	object.NiObject
	AsExtraData() *NiExtraData
}

// Controller is implemented by every time controller.
type Controller interface {
	object.NiObject
	AsController() *NiTimeController
}

// Interpolator is implemented by every interpolator.
type Interpolator interface {
	object.NiObject
	AsInterpolator() *NiInterpolator
}

// ShaderProperty is implemented by Bethesda shader properties.
type ShaderProperty interface {
	Property
	AsShader() *BSShaderProperty
}

// GeometryData is implemented by NiGeometryData and its subtypes.
type GeometryData interface {
	object.NiObject
	AsGeometryData() *NiGeometryData
}

// CollisionObject is implemented by every collision object.
type CollisionObject interface {
	object.NiObject
	AsCollisionObject() *NiCollisionObject
}

// PSysModifier is implemented by every particle system modifier.
type PSysModifier interface {
	object.NiObject
	AsPSysModifier() *NiPSysModifier
}

// BhkShape is implemented by every Havok shape.
type BhkShape interface {
	object.NiObject
	AsBhkShape() *BhkShapeBase
}

// TriShape is implemented by BSTriShape and its subtypes.
type TriShape interface {
	Shape
	AsTriShape() *BSTriShape
}

// SkinInstance is implemented by NiSkinInstance and BSDismemberSkinInstance.
type SkinInstance interface {
	object.NiObject
	AsSkinInstance() *NiSkinInstance
}
