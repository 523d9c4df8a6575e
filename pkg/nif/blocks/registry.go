package blocks

import (
	"errors"
	"fmt"
	"slices"

	"github.com/deploymenttheory/go-nif/pkg/nif/stream"
)

// ErrUnknownBlock is returned for block type names the registry lacks.
var ErrUnknownBlock = errors.New("unknown block type")

var constructors = map[string]func() NiObject{
	"AvoidNode":                               func() NiObject { return &AvoidNode{} },
	"bhkAabbPhantom":                          func() NiObject { return &BhkAabbPhantom{} },
	"bhkBallAndSocketConstraint":              func() NiObject { return &BhkBallAndSocketConstraint{} },
	"bhkBallSocketConstraintChain":            func() NiObject { return &BhkBallSocketConstraintChain{} },
	"bhkBlendCollisionObject":                 func() NiObject { return &BhkBlendCollisionObject{} },
	"bhkBlendController":                      func() NiObject { return &BhkBlendController{} },
	"bhkBoxShape":                             func() NiObject { return &BhkBoxShape{} },
	"bhkBreakableConstraint":                  func() NiObject { return &BhkBreakableConstraint{} },
	"bhkCapsuleShape":                         func() NiObject { return &BhkCapsuleShape{} },
	"bhkCollisionObject":                      func() NiObject { return &BhkCollisionObject{} },
	"bhkCompressedMeshShape":                  func() NiObject { return &BhkCompressedMeshShape{} },
	"bhkCompressedMeshShapeData":              func() NiObject { return &BhkCompressedMeshShapeData{} },
	"bhkConvexListShape":                      func() NiObject { return &BhkConvexListShape{} },
	"bhkConvexTransformShape":                 func() NiObject { return &BhkConvexTransformShape{} },
	"bhkConvexVerticesShape":                  func() NiObject { return &BhkConvexVerticesShape{} },
	"bhkHingeConstraint":                      func() NiObject { return &BhkHingeConstraint{} },
	"bhkLimitedHingeConstraint":               func() NiObject { return &BhkLimitedHingeConstraint{} },
	"bhkLiquidAction":                         func() NiObject { return &BhkLiquidAction{} },
	"bhkListShape":                            func() NiObject { return &BhkListShape{} },
	"bhkMalleableConstraint":                  func() NiObject { return &BhkMalleableConstraint{} },
	"bhkMoppBvTreeShape":                      func() NiObject { return &BhkMoppBvTreeShape{} },
	"bhkMultiSphereShape":                     func() NiObject { return &BhkMultiSphereShape{} },
	"bhkNiTriStripsShape":                     func() NiObject { return &BhkNiTriStripsShape{} },
	"bhkNPCollisionObject":                    func() NiObject { return &BhkNPCollisionObject{} },
	"bhkOrientHingedBodyAction":               func() NiObject { return &BhkOrientHingedBodyAction{} },
	"bhkPackedNiTriStripsShape":               func() NiObject { return &BhkPackedNiTriStripsShape{} },
	"bhkPCollisionObject":                     func() NiObject { return &BhkPCollisionObject{} },
	"bhkPhysicsSystem":                        func() NiObject { return &BhkPhysicsSystem{} },
	"bhkPlaneShape":                           func() NiObject { return &BhkPlaneShape{} },
	"bhkPrismaticConstraint":                  func() NiObject { return &BhkPrismaticConstraint{} },
	"bhkRagdollConstraint":                    func() NiObject { return &BhkRagdollConstraint{} },
	"bhkRagdollSystem":                        func() NiObject { return &BhkRagdollSystem{} },
	"bhkRigidBody":                            func() NiObject { return &BhkRigidBody{} },
	"bhkRigidBodyT":                           func() NiObject { return &BhkRigidBodyT{} },
	"bhkSimpleShapePhantom":                   func() NiObject { return &BhkSimpleShapePhantom{} },
	"bhkSPCollisionObject":                    func() NiObject { return &BhkSPCollisionObject{} },
	"bhkSphereShape":                          func() NiObject { return &BhkSphereShape{} },
	"bhkStiffSpringConstraint":                func() NiObject { return &BhkStiffSpringConstraint{} },
	"bhkTransformShape":                       func() NiObject { return &BhkTransformShape{} },
	"BSAnimNote":                              func() NiObject { return &BSAnimNote{} },
	"BSAnimNotes":                             func() NiObject { return &BSAnimNotes{} },
	"BSBehaviorGraphExtraData":                func() NiObject { return &BSBehaviorGraphExtraData{} },
	"BSBlastNode":                             func() NiObject { return &BSBlastNode{} },
	"BSBoneLODExtraData":                      func() NiObject { return &BSBoneLODExtraData{} },
	"BSBound":                                 func() NiObject { return &BSBound{} },
	"BSClothExtraData":                        func() NiObject { return &BSClothExtraData{} },
	"BSConnectPoint::Children":                func() NiObject { return &BSConnectPointChildren{} },
	"BSConnectPoint::Parents":                 func() NiObject { return &BSConnectPointParents{} },
	"BSDamageStage":                           func() NiObject { return &BSDamageStage{} },
	"BSDebrisNode":                            func() NiObject { return &BSDebrisNode{} },
	"BSDecalPlacementVectorExtraData":         func() NiObject { return &BSDecalPlacementVectorExtraData{} },
	"BSDismemberSkinInstance":                 func() NiObject { return &BSDismemberSkinInstance{} },
	"BSDistantObjectLargeRefExtraData":        func() NiObject { return &BSDistantObjectLargeRefExtraData{} },
	"BSDistantTreeShaderProperty":             func() NiObject { return &BSDistantTreeShaderProperty{} },
	"BSDynamicTriShape":                       func() NiObject { return &BSDynamicTriShape{} },
	"BSEffectShaderProperty":                  func() NiObject { return &BSEffectShaderProperty{} },
	"BSEffectShaderPropertyColorController":   func() NiObject { return &BSEffectShaderPropertyColorController{} },
	"BSEffectShaderPropertyFloatController":   func() NiObject { return &BSEffectShaderPropertyFloatController{} },
	"BSEyeCenterExtraData":                    func() NiObject { return &BSEyeCenterExtraData{} },
	"BSFadeNode":                              func() NiObject { return &BSFadeNode{} },
	"BSFrustumFOVController":                  func() NiObject { return &BSFrustumFOVController{} },
	"BSFurnitureMarker":                       func() NiObject { return &BSFurnitureMarker{} },
	"BSFurnitureMarkerNode":                   func() NiObject { return &BSFurnitureMarkerNode{} },
	"BSInvMarker":                             func() NiObject { return &BSInvMarker{} },
	"BSKeyframeController":                    func() NiObject { return &BSKeyframeController{} },
	"BSLagBoneController":                     func() NiObject { return &BSLagBoneController{} },
	"BSLeafAnimNode":                          func() NiObject { return &BSLeafAnimNode{} },
	"BSLightingShaderProperty":                func() NiObject { return NewBSLightingShaderProperty() },
	"BSLightingShaderPropertyColorController": func() NiObject { return &BSLightingShaderPropertyColorController{} },
	"BSLightingShaderPropertyFloatController": func() NiObject { return &BSLightingShaderPropertyFloatController{} },
	"BSLODTriShape":                           func() NiObject { return &BSLODTriShape{} },
	"BSMasterParticleSystem":                  func() NiObject { return &BSMasterParticleSystem{} },
	"BSMeshLODTriShape":                       func() NiObject { return &BSMeshLODTriShape{} },
	"BSMultiBound":                            func() NiObject { return &BSMultiBound{} },
	"BSMultiBoundAABB":                        func() NiObject { return &BSMultiBoundAABB{} },
	"BSMultiBoundNode":                        func() NiObject { return &BSMultiBoundNode{} },
	"BSMultiBoundOBB":                         func() NiObject { return &BSMultiBoundOBB{} },
	"BSMultiBoundSphere":                      func() NiObject { return &BSMultiBoundSphere{} },
	"BSNiAlphaPropertyTestRefController":      func() NiObject { return &BSNiAlphaPropertyTestRefController{} },
	"BSOrderedNode":                           func() NiObject { return &BSOrderedNode{} },
	"BSPackedCombinedSharedGeomDataExtra":     func() NiObject { return &BSPackedCombinedSharedGeomDataExtra{} },
	"BSParentVelocityModifier":                func() NiObject { return &BSParentVelocityModifier{} },
	"BSPositionData":                          func() NiObject { return &BSPositionData{} },
	"BSProceduralLightningController":         func() NiObject { return &BSProceduralLightningController{} },
	"BSPSysHavokUpdateModifier":               func() NiObject { return &BSPSysHavokUpdateModifier{} },
	"BSPSysInheritVelocityModifier":           func() NiObject { return &BSPSysInheritVelocityModifier{} },
	"BSPSysLODModifier":                       func() NiObject { return &BSPSysLODModifier{} },
	"BSPSysMultiTargetEmitterCtlr":            func() NiObject { return &BSPSysMultiTargetEmitterCtlr{} },
	"BSPSysRecycleBoundModifier":              func() NiObject { return &BSPSysRecycleBoundModifier{} },
	"BSPSysScaleModifier":                     func() NiObject { return &BSPSysScaleModifier{} },
	"BSPSysSimpleColorModifier":               func() NiObject { return &BSPSysSimpleColorModifier{} },
	"BSPSysStripUpdateModifier":               func() NiObject { return &BSPSysStripUpdateModifier{} },
	"BSPSysSubTexModifier":                    func() NiObject { return &BSPSysSubTexModifier{} },
	"BSRangeNode":                             func() NiObject { return &BSRangeNode{} },
	"BSRefractionFirePeriodController":        func() NiObject { return &BSRefractionFirePeriodController{} },
	"BSRefractionStrengthController":          func() NiObject { return &BSRefractionStrengthController{} },
	"BSRotAccumTransfInterpolator":            func() NiObject { return &BSRotAccumTransfInterpolator{} },
	"BSSegmentedTriShape":                     func() NiObject { return &BSSegmentedTriShape{} },
	"BSShaderNoLightingProperty":              func() NiObject { return &BSShaderNoLightingProperty{} },
	"BSShaderPPLightingProperty":              func() NiObject { return &BSShaderPPLightingProperty{} },
	"BSShaderTextureSet":                      func() NiObject { return &BSShaderTextureSet{} },
	"BSSkin::BoneData":                        func() NiObject { return &BSSkinBoneData{} },
	"BSSkin::Instance":                        func() NiObject { return &BSSkinInstance{} },
	"BSSkyShaderProperty":                     func() NiObject { return &BSSkyShaderProperty{} },
	"BSStripParticleSystem":                   func() NiObject { return &BSStripParticleSystem{} },
	"BSStripPSysData":                         func() NiObject { return NewBSStripPSysData() },
	"BSSubIndexTriShape":                      func() NiObject { return &BSSubIndexTriShape{} },
	"BSTreadTransfInterpolator":               func() NiObject { return &BSTreadTransfInterpolator{} },
	"BSTreeNode":                              func() NiObject { return &BSTreeNode{} },
	"BSTriShape":                              func() NiObject { return &BSTriShape{} },
	"BSValueNode":                             func() NiObject { return &BSValueNode{} },
	"BSWArray":                                func() NiObject { return &BSWArray{} },
	"BSWaterShaderProperty":                   func() NiObject { return &BSWaterShaderProperty{} },
	"BSWindModifier":                          func() NiObject { return &BSWindModifier{} },
	"BSXFlags":                                func() NiObject { return &BSXFlags{} },
	"DistantLODShaderProperty":                func() NiObject { return &DistantLODShaderProperty{} },
	"HairShaderProperty":                      func() NiObject { return &HairShaderProperty{} },
	"hkPackedNiTriStripsData":                 func() NiObject { return &HkPackedNiTriStripsData{} },
	"Lighting30ShaderProperty":                func() NiObject { return &Lighting30ShaderProperty{} },
	"NiAdditionalGeometryData":                func() NiObject { return &NiAdditionalGeometryData{} },
	"NiAlphaController":                       func() NiObject { return &NiAlphaController{} },
	"NiAlphaProperty":                         func() NiObject { return &NiAlphaProperty{} },
	"NiAmbientLight":                          func() NiObject { return &NiAmbientLight{} },
	"NiBillboardNode":                         func() NiObject { return &NiBillboardNode{} },
	"NiBinaryExtraData":                       func() NiObject { return &NiBinaryExtraData{} },
	"NiBlendBoolInterpolator":                 func() NiObject { return &NiBlendBoolInterpolator{} },
	"NiBlendFloatInterpolator":                func() NiObject { return &NiBlendFloatInterpolator{} },
	"NiBlendPoint3Interpolator":               func() NiObject { return &NiBlendPoint3Interpolator{} },
	"NiBlendTransformInterpolator":            func() NiObject { return &NiBlendTransformInterpolator{} },
	"NiBoolData":                              func() NiObject { return &NiBoolData{} },
	"NiBooleanExtraData":                      func() NiObject { return &NiBooleanExtraData{} },
	"NiBoolInterpolator":                      func() NiObject { return &NiBoolInterpolator{} },
	"NiBoolTimelineInterpolator":              func() NiObject { return &NiBoolTimelineInterpolator{} },
	"NiBSAnimationNode":                       func() NiObject { return &NiBSAnimationNode{} },
	"NiBSParticleNode":                        func() NiObject { return &NiBSParticleNode{} },
	"NiBSplineBasisData":                      func() NiObject { return &NiBSplineBasisData{} },
	"NiBSplineCompFloatInterpolator":          func() NiObject { return &NiBSplineCompFloatInterpolator{} },
	"NiBSplineCompPoint3Interpolator":         func() NiObject { return &NiBSplineCompPoint3Interpolator{} },
	"NiBSplineCompTransformInterpolator":      func() NiObject { return &NiBSplineCompTransformInterpolator{} },
	"NiBSplineData":                           func() NiObject { return &NiBSplineData{} },
	"NiBSplineFloatInterpolator":              func() NiObject { return &NiBSplineFloatInterpolator{} },
	"NiBSplinePoint3Interpolator":             func() NiObject { return &NiBSplinePoint3Interpolator{} },
	"NiBSplineTransformInterpolator":          func() NiObject { return &NiBSplineTransformInterpolator{} },
	"NiCamera":                                func() NiObject { return &NiCamera{} },
	"NiColorData":                             func() NiObject { return &NiColorData{} },
	"NiColorExtraData":                        func() NiObject { return &NiColorExtraData{} },
	"NiControllerManager":                     func() NiObject { return &NiControllerManager{} },
	"NiControllerSequence":                    func() NiObject { return &NiControllerSequence{} },
	"NiDefaultAVObjectPalette":                func() NiObject { return &NiDefaultAVObjectPalette{} },
	"NiDirectionalLight":                      func() NiObject { return &NiDirectionalLight{} },
	"NiDitherProperty":                        func() NiObject { return &NiDitherProperty{} },
	"NiFlipController":                        func() NiObject { return &NiFlipController{} },
	"NiFloatData":                             func() NiObject { return &NiFloatData{} },
	"NiFloatExtraData":                        func() NiObject { return &NiFloatExtraData{} },
	"NiFloatInterpolator":                     func() NiObject { return &NiFloatInterpolator{} },
	"NiFloatsExtraData":                       func() NiObject { return &NiFloatsExtraData{} },
	"NiFogProperty":                           func() NiObject { return &NiFogProperty{} },
	"NiFurSpringController":                   func() NiObject { return &NiFurSpringController{} },
	"NiGeomMorpherController":                 func() NiObject { return &NiGeomMorpherController{} },
	"NiIntegerExtraData":                      func() NiObject { return &NiIntegerExtraData{} },
	"NiIntegersExtraData":                     func() NiObject { return &NiIntegersExtraData{} },
	"NiKeyframeController":                    func() NiObject { return &NiKeyframeController{} },
	"NiKeyframeData":                          func() NiObject { return &NiKeyframeData{} },
	"NiLightColorController":                  func() NiObject { return &NiLightColorController{} },
	"NiLightDimmerController":                 func() NiObject { return &NiLightDimmerController{} },
	"NiLightRadiusController":                 func() NiObject { return &NiLightRadiusController{} },
	"NiLines":                                 func() NiObject { return &NiLines{} },
	"NiLinesData":                             func() NiObject { return &NiLinesData{} },
	"NiLODNode":                               func() NiObject { return &NiLODNode{} },
	"NiLookAtController":                      func() NiObject { return &NiLookAtController{} },
	"NiLookAtInterpolator":                    func() NiObject { return &NiLookAtInterpolator{} },
	"NiMaterialColorController":               func() NiObject { return &NiMaterialColorController{} },
	"NiMaterialProperty":                      func() NiObject { return &NiMaterialProperty{} },
	"NiMeshParticleSystem":                    func() NiObject { return &NiMeshParticleSystem{} },
	"NiMeshPSysData":                          func() NiObject { return NewNiMeshPSysData() },
	"NiMorphData":                             func() NiObject { return &NiMorphData{} },
	"NiMultiTargetTransformController":        func() NiObject { return &NiMultiTargetTransformController{} },
	"NiNode":                                  func() NiObject { return &NiNode{} },
	"NiPalette":                               func() NiObject { return &NiPalette{} },
	"NiParticles":                             func() NiObject { return &NiParticles{} },
	"NiParticlesData":                         func() NiObject { return NewNiParticlesData() },
	"NiParticleSystem":                        func() NiObject { return &NiParticleSystem{} },
	"NiPathController":                        func() NiObject { return &NiPathController{} },
	"NiPathInterpolator":                      func() NiObject { return &NiPathInterpolator{} },
	"NiPersistentSrcTextureRendererData":      func() NiObject { return &NiPersistentSrcTextureRendererData{} },
	"NiPixelData":                             func() NiObject { return &NiPixelData{} },
	"NiPoint3Interpolator":                    func() NiObject { return &NiPoint3Interpolator{} },
	"NiPointLight":                            func() NiObject { return &NiPointLight{} },
	"NiPosData":                               func() NiObject { return &NiPosData{} },
	"NiPSysAgeDeathModifier":                  func() NiObject { return &NiPSysAgeDeathModifier{} },
	"NiPSysAirFieldModifier":                  func() NiObject { return &NiPSysAirFieldModifier{} },
	"NiPSysBombModifier":                      func() NiObject { return &NiPSysBombModifier{} },
	"NiPSysBoundUpdateModifier":               func() NiObject { return &NiPSysBoundUpdateModifier{} },
	"NiPSysBoxEmitter":                        func() NiObject { return &NiPSysBoxEmitter{} },
	"NiPSysColliderManager":                   func() NiObject { return &NiPSysColliderManager{} },
	"NiPSysColorModifier":                     func() NiObject { return &NiPSysColorModifier{} },
	"NiPSysCylinderEmitter":                   func() NiObject { return &NiPSysCylinderEmitter{} },
	"NiPSysData":                              func() NiObject { return NewNiPSysData() },
	"NiPSysDragFieldModifier":                 func() NiObject { return &NiPSysDragFieldModifier{} },
	"NiPSysDragModifier":                      func() NiObject { return &NiPSysDragModifier{} },
	"NiPSysEmitterCtlr":                       func() NiObject { return &NiPSysEmitterCtlr{} },
	"NiPSysEmitterCtlrData":                   func() NiObject { return &NiPSysEmitterCtlrData{} },
	"NiPSysEmitterDeclinationCtlr":            func() NiObject { return &NiPSysEmitterDeclinationCtlr{} },
	"NiPSysEmitterDeclinationVarCtlr":         func() NiObject { return &NiPSysEmitterDeclinationVarCtlr{} },
	"NiPSysEmitterInitialRadiusCtlr":          func() NiObject { return &NiPSysEmitterInitialRadiusCtlr{} },
	"NiPSysEmitterLifeSpanCtlr":               func() NiObject { return &NiPSysEmitterLifeSpanCtlr{} },
	"NiPSysEmitterPlanarAngleCtlr":            func() NiObject { return &NiPSysEmitterPlanarAngleCtlr{} },
	"NiPSysEmitterPlanarAngleVarCtlr":         func() NiObject { return &NiPSysEmitterPlanarAngleVarCtlr{} },
	"NiPSysEmitterSpeedCtlr":                  func() NiObject { return &NiPSysEmitterSpeedCtlr{} },
	"NiPSysFieldAttenuationCtlr":              func() NiObject { return &NiPSysFieldAttenuationCtlr{} },
	"NiPSysFieldMagnitudeCtlr":                func() NiObject { return &NiPSysFieldMagnitudeCtlr{} },
	"NiPSysFieldMaxDistanceCtlr":              func() NiObject { return &NiPSysFieldMaxDistanceCtlr{} },
	"NiPSysGravityFieldModifier":              func() NiObject { return &NiPSysGravityFieldModifier{} },
	"NiPSysGravityModifier":                   func() NiObject { return &NiPSysGravityModifier{} },
	"NiPSysGravityStrengthCtlr":               func() NiObject { return &NiPSysGravityStrengthCtlr{} },
	"NiPSysGrowFadeModifier":                  func() NiObject { return &NiPSysGrowFadeModifier{} },
	"NiPSysInitialRotAngleCtlr":               func() NiObject { return &NiPSysInitialRotAngleCtlr{} },
	"NiPSysInitialRotAngleVarCtlr":            func() NiObject { return &NiPSysInitialRotAngleVarCtlr{} },
	"NiPSysInitialRotSpeedCtlr":               func() NiObject { return &NiPSysInitialRotSpeedCtlr{} },
	"NiPSysInitialRotSpeedVarCtlr":            func() NiObject { return &NiPSysInitialRotSpeedVarCtlr{} },
	"NiPSysMeshEmitter":                       func() NiObject { return &NiPSysMeshEmitter{} },
	"NiPSysMeshUpdateModifier":                func() NiObject { return &NiPSysMeshUpdateModifier{} },
	"NiPSysModifierActiveCtlr":                func() NiObject { return &NiPSysModifierActiveCtlr{} },
	"NiPSysPlanarCollider":                    func() NiObject { return &NiPSysPlanarCollider{} },
	"NiPSysPositionModifier":                  func() NiObject { return &NiPSysPositionModifier{} },
	"NiPSysRadialFieldModifier":               func() NiObject { return &NiPSysRadialFieldModifier{} },
	"NiPSysResetOnLoopCtlr":                   func() NiObject { return &NiPSysResetOnLoopCtlr{} },
	"NiPSysRotationModifier":                  func() NiObject { return &NiPSysRotationModifier{} },
	"NiPSysSpawnModifier":                     func() NiObject { return &NiPSysSpawnModifier{} },
	"NiPSysSphereEmitter":                     func() NiObject { return &NiPSysSphereEmitter{} },
	"NiPSysSphericalCollider":                 func() NiObject { return &NiPSysSphericalCollider{} },
	"NiPSysTurbulenceFieldModifier":           func() NiObject { return &NiPSysTurbulenceFieldModifier{} },
	"NiPSysUpdateCtlr":                        func() NiObject { return &NiPSysUpdateCtlr{} },
	"NiPSysVortexFieldModifier":               func() NiObject { return &NiPSysVortexFieldModifier{} },
	"NiRangeLODData":                          func() NiObject { return &NiRangeLODData{} },
	"NiScreenLODData":                         func() NiObject { return &NiScreenLODData{} },
	"NiSequenceStreamHelper":                  func() NiObject { return &NiSequenceStreamHelper{} },
	"NiShadeProperty":                         func() NiObject { return &NiShadeProperty{} },
	"NiShadowGenerator":                       func() NiObject { return &NiShadowGenerator{} },
	"NiSkinData":                              func() NiObject { return &NiSkinData{} },
	"NiSkinInstance":                          func() NiObject { return &NiSkinInstance{} },
	"NiSkinPartition":                         func() NiObject { return &NiSkinPartition{} },
	"NiSortAdjustNode":                        func() NiObject { return &NiSortAdjustNode{} },
	"NiSourceTexture":                         func() NiObject { return NewNiSourceTexture() },
	"NiSpecularProperty":                      func() NiObject { return &NiSpecularProperty{} },
	"NiSpotLight":                             func() NiObject { return &NiSpotLight{} },
	"NiStencilProperty":                       func() NiObject { return &NiStencilProperty{} },
	"NiStringExtraData":                       func() NiObject { return &NiStringExtraData{} },
	"NiStringPalette":                         func() NiObject { return &NiStringPalette{} },
	"NiStringsExtraData":                      func() NiObject { return &NiStringsExtraData{} },
	"NiSwitchNode":                            func() NiObject { return &NiSwitchNode{} },
	"NiTextKeyExtraData":                      func() NiObject { return &NiTextKeyExtraData{} },
	"NiTextureEffect":                         func() NiObject { return &NiTextureEffect{} },
	"NiTextureTransformController":            func() NiObject { return &NiTextureTransformController{} },
	"NiTexturingProperty":                     func() NiObject { return &NiTexturingProperty{} },
	"NiTransformController":                   func() NiObject { return &NiTransformController{} },
	"NiTransformData":                         func() NiObject { return &NiTransformData{} },
	"NiTransformInterpolator":                 func() NiObject { return &NiTransformInterpolator{} },
	"NiTriShape":                              func() NiObject { return &NiTriShape{} },
	"NiTriShapeData":                          func() NiObject { return &NiTriShapeData{} },
	"NiTriStrips":                             func() NiObject { return &NiTriStrips{} },
	"NiTriStripsData":                         func() NiObject { return &NiTriStripsData{} },
	"NiUVController":                          func() NiObject { return &NiUVController{} },
	"NiUVData":                                func() NiObject { return &NiUVData{} },
	"NiVectorExtraData":                       func() NiObject { return &NiVectorExtraData{} },
	"NiVertexColorProperty":                   func() NiObject { return &NiVertexColorProperty{} },
	"NiVisController":                         func() NiObject { return &NiVisController{} },
	"NiVisData":                               func() NiObject { return &NiVisData{} },
	"NiWireframeProperty":                     func() NiObject { return &NiWireframeProperty{} },
	"NiZBufferProperty":                       func() NiObject { return &NiZBufferProperty{} },
	"RootCollisionNode":                       func() NiObject { return &RootCollisionNode{} },
	"SkyShaderProperty":                       func() NiObject { return &SkyShaderProperty{} },
	"TallGrassShaderProperty":                 func() NiObject { return &TallGrassShaderProperty{} },
	"TileShaderProperty":                      func() NiObject { return &TileShaderProperty{} },
	"VolumetricFogShaderProperty":             func() NiObject { return &VolumetricFogShaderProperty{} },
	"WaterShaderProperty":                     func() NiObject { return &WaterShaderProperty{} },
}

// Create returns a new empty block for a type name, or nil when the name is
// not registered.
func Create(name string) NiObject {
	ctor, ok := constructors[name]
	if !ok {
		return nil
	}
	return ctor()
}

// Has reports whether a type name is registered.
func Has(name string) bool {
	_, ok := constructors[name]
	return ok
}

// Names returns every registered type name in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load creates a block for name and reads it from s.
func Load(name string, s *stream.Stream) (NiObject, error) {
	o := Create(name)
	if o == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, name)
	}
	o.Sync(s)
	if err := s.Err(); err != nil {
		return o, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return o, nil
}
