package lumen

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/anim"
	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Name          string
	Cameras       []CameraDef
	Lights        []LightDef
	Meshes        []MeshDef
	SkinnedModels []SkinnedModelDef
}

// CameraDef places a camera at Position looking at Target. Zero FovY, Near
// and Far keep the camera defaults.
type CameraDef struct {
	Name     string
	Position mgl32.Vec3
	Target   mgl32.Vec3
	FovY     float32
	Near     float32
	Far      float32
}

// LightDef defines a light instantiation.
type LightDef struct {
	Name        string
	Type        core.LightType
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	Color       [3]float32
	Intensity   float32
	Range       float32
	ConeAngle   float32
	CastShadows bool
}

// MeshDef is a static geometry built from assets.
type MeshDef struct {
	Name      string
	Primitive AssetId
	Materials []AssetId
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Scale     mgl32.Vec3
}

// SkinnedModelDef instantiates a shared skinned mesh with one child node per
// skeleton joint.
type SkinnedModelDef struct {
	Name      string
	Mesh      AssetId
	Materials []AssetId
	Clip      int
	Loop      bool
	Position  mgl32.Vec3
	Rotation  mgl32.Quat
	Scale     mgl32.Vec3
}

// LoadScene builds the scene graph described by def. Asset ids must be
// loaded in assets.
func LoadScene(assets *AssetServer, def *SceneDef) *core.Node {
	name := def.Name
	if name == "" {
		name = "scene"
	}
	root := core.NewNode(name)

	for i, c := range def.Cameras {
		root.AttachNode(spawnCamera(c, i))
	}
	for i, l := range def.Lights {
		root.AttachNode(spawnLight(l, i))
	}
	for _, m := range def.Meshes {
		root.AttachNode(spawnMesh(assets, m))
	}
	for _, m := range def.SkinnedModels {
		root.AttachNode(spawnSkinnedModel(assets, m))
	}
	return root
}

func transformOf(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) core.Transform {
	t := core.NewTransform()
	t.Position = position
	if rotation != (mgl32.Quat{}) {
		t.Rotation = rotation
	}
	if scale != (mgl32.Vec3{}) {
		t.Scale = scale
	}
	return t
}

func spawnCamera(def CameraDef, index int) *core.Node {
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("camera%d", index)
	}
	node := core.NewNode(name)

	camera := core.NewCamera()
	if def.FovY > 0 {
		camera.FovY = def.FovY
	}
	if def.Near > 0 {
		camera.Near = def.Near
	}
	if def.Far > 0 {
		camera.Far = def.Far
	}
	node.AttachComponent(camera)

	if def.Target != def.Position {
		camera.LookAt(def.Position, def.Target, mgl32.Vec3{0, 1, 0})
	} else {
		node.Local.Position = def.Position
	}
	return node
}

func spawnLight(def LightDef, index int) *core.Node {
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("light%d", index)
	}
	node := core.NewNode(name)
	node.Local = transformOf(def.Position, def.Rotation, mgl32.Vec3{})

	light := core.NewLight(def.Type)
	if def.Color != ([3]float32{}) {
		light.Color = def.Color
	}
	if def.Intensity > 0 {
		light.Intensity = def.Intensity
	}
	if def.Range > 0 {
		light.Range = def.Range
	}
	if def.ConeAngle > 0 {
		light.ConeAngle = def.ConeAngle
	}
	light.CastShadows = def.CastShadows
	node.AttachComponent(light)
	return node
}

func materialsOf(assets *AssetServer, ids []AssetId) *core.RenderState {
	rs := core.NewRenderState()
	for _, id := range ids {
		m, ok := assets.Material(id)
		if !ok {
			panic(fmt.Sprintf("material %s is not loaded", id))
		}
		rs.Materials = append(rs.Materials, m)
	}
	return rs
}

func spawnMesh(assets *AssetServer, def MeshDef) *core.Node {
	prim, ok := assets.Primitive(def.Primitive)
	if !ok {
		panic(fmt.Sprintf("primitive %s is not loaded", def.Primitive))
	}
	node := core.NewNode(def.Name)
	node.Local = transformOf(def.Position, def.Rotation, def.Scale)
	node.AttachComponent(core.NewGeometry(prim))
	if len(def.Materials) > 0 {
		node.AttachComponent(materialsOf(assets, def.Materials))
	}
	return node
}

// spawnSkinnedModel lays out the model node, its skin geometry and one joint
// node per skeleton joint, named after the joint so clip channels find it.
func spawnSkinnedModel(assets *AssetServer, def SkinnedModelDef) *core.Node {
	component := assets.InstantiateSkinnedMesh(def.Mesh)
	mesh := component.Mesh()

	name := def.Name
	if name == "" {
		name = mesh.Name
	}
	model := core.NewNode(name)
	model.Local = transformOf(def.Position, def.Rotation, def.Scale)

	skin := anim.NewSkin()
	mesh.Skeleton.EachJoint(func(j *anim.Joint) {
		jointNode := core.NewNode(j.Name)
		jointNode.AttachComponent(anim.NewJointComponent(j.Offset))
		model.AttachNode(jointNode)
		skin.AddJoint(jointNode)
	})

	if len(mesh.Primitives) > 0 {
		body := core.NewNode(name + ".skin")
		body.AttachComponent(core.NewGeometry(mesh.Primitives...))
		body.AttachComponent(skin)
		if len(def.Materials) > 0 {
			body.AttachComponent(materialsOf(assets, def.Materials))
		}
		model.AttachNode(body)
	}

	component.SetCurrentAnimation(def.Clip)
	component.SetAnimationParams(0, -1, def.Loop, 1)
	model.AttachComponent(component)
	return model
}

// updateSceneTask advances components with the simulation clock, then
// propagates world transforms.
func updateSceneTask(sim *Simulation, cmd *Commands) {
	if sim.scene == nil {
		return
	}
	sim.scene.Perform(core.UpdateComponents(sim.clock))
	sim.scene.Perform(core.UpdateWorldState())
}
