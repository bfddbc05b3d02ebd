package lumen

import (
	"fmt"

	"github.com/gekko3d/lumen/rt/anim"
	"github.com/gekko3d/lumen/rt/core"

	"github.com/google/uuid"
)

type AssetId string

// AssetServer holds assets shared between scene nodes. Skinned meshes are
// shared by every component instantiated from them.
type AssetServer struct {
	skinnedMeshes map[AssetId]*anim.SkinnedMesh
	materials     map[AssetId]*core.Material
	primitives    map[AssetId]*core.Primitive
}

type AssetServerModule struct{}

func (AssetServerModule) Install(sim *Simulation, cmd *Commands) {
	sim.addResources(NewAssetServer())
}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		skinnedMeshes: make(map[AssetId]*anim.SkinnedMesh),
		materials:     make(map[AssetId]*core.Material),
		primitives:    make(map[AssetId]*core.Primitive),
	}
}

func (server *AssetServer) LoadSkinnedMesh(mesh *anim.SkinnedMesh) AssetId {
	if mesh == nil {
		panic("LoadSkinnedMesh: mesh is nil")
	}
	id := makeAssetId()
	server.skinnedMeshes[id] = mesh
	return id
}

func (server *AssetServer) SkinnedMesh(id AssetId) (*anim.SkinnedMesh, bool) {
	mesh, ok := server.skinnedMeshes[id]
	return mesh, ok
}

// InstantiateSkinnedMesh returns a new animation component playing the
// shared mesh id. Unknown ids panic.
func (server *AssetServer) InstantiateSkinnedMesh(id AssetId) *anim.SkinnedMeshComponent {
	mesh, ok := server.skinnedMeshes[id]
	if !ok {
		panic(fmt.Sprintf("skinned mesh %s is not loaded", id))
	}
	return anim.NewSkinnedMeshComponent(mesh)
}

func (server *AssetServer) CreateMaterial(m *core.Material) AssetId {
	id := makeAssetId()
	server.materials[id] = m
	return id
}

func (server *AssetServer) Material(id AssetId) (*core.Material, bool) {
	m, ok := server.materials[id]
	return m, ok
}

func (server *AssetServer) CreatePrimitive(p *core.Primitive) AssetId {
	id := makeAssetId()
	server.primitives[id] = p
	return id
}

// CreateQuad registers a width x height quad primitive.
func (server *AssetServer) CreateQuad(width, height float32) AssetId {
	return server.CreatePrimitive(core.NewQuadPrimitive(width, height))
}

func (server *AssetServer) Primitive(id AssetId) (*core.Primitive, bool) {
	p, ok := server.primitives[id]
	return p, ok
}

// Release forgets id, whatever its kind.
func (server *AssetServer) Release(id AssetId) {
	delete(server.skinnedMeshes, id)
	delete(server.materials, id)
	delete(server.primitives, id)
}

// Assets returns the installed asset server, or nil.
func (sim *Simulation) Assets() *AssetServer {
	a, _ := Resource[AssetServer](sim)
	return a
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
