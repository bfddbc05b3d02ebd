package lumen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gekko3d/lumen/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// NodeData is the saved form of one scene node. Geometry and animation are
// asset backed and are not part of presets.
type NodeData struct {
	ID        int         `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Position  mgl32.Vec3  `json:"position" yaml:"position"`
	Rotation  mgl32.Quat  `json:"rotation" yaml:"rotation"`
	Scale     mgl32.Vec3  `json:"scale" yaml:"scale"`
	HasParent bool        `json:"has_parent" yaml:"has_parent"`
	ParentID  int         `json:"parent_id" yaml:"parent_id"`
	Light     *LightData  `json:"light,omitempty" yaml:"light,omitempty"`
	Camera    *CameraData `json:"camera,omitempty" yaml:"camera,omitempty"`
}

type LightData struct {
	Type            core.LightType `json:"type" yaml:"type"`
	Color           [3]float32     `json:"color" yaml:"color"`
	Intensity       float32        `json:"intensity" yaml:"intensity"`
	Range           float32        `json:"range" yaml:"range"`
	ConeAngle       float32        `json:"cone_angle" yaml:"cone_angle"`
	Attenuation     mgl32.Vec3     `json:"attenuation" yaml:"attenuation"`
	CastShadows     bool           `json:"cast_shadows" yaml:"cast_shadows"`
	ShadowNearCoeff float32        `json:"shadow_near" yaml:"shadow_near"`
	ShadowFarCoeff  float32        `json:"shadow_far" yaml:"shadow_far"`
}

type CameraData struct {
	FovY   float32 `json:"fov_y" yaml:"fov_y"`
	Aspect float32 `json:"aspect" yaml:"aspect"`
	Near   float32 `json:"near" yaml:"near"`
	Far    float32 `json:"far" yaml:"far"`
}

// Preset files ending in .yaml or .yml are YAML, everything else is JSON.
func presetIsYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

type PresetData struct {
	Nodes []NodeData `json:"nodes" yaml:"nodes"`
}

// SavePreset writes the node hierarchy under root, with light and camera
// settings, as JSON or YAML depending on the file extension.
func SavePreset(root *core.Node, filename string) error {
	if root == nil {
		return fmt.Errorf("save preset %s: nil scene", filename)
	}

	ids := make(map[*core.Node]int)
	var nodes []NodeData

	root.Perform(func(n *core.Node) {
		id := len(nodes)
		ids[n] = id

		data := NodeData{
			ID:       id,
			Name:     n.Name,
			Position: n.Local.Position,
			Rotation: n.Local.Rotation,
			Scale:    n.Local.Scale,
		}
		if p := n.Parent(); p != nil && n != root {
			data.HasParent = true
			data.ParentID = ids[p]
		}
		if l := n.Light(); l != nil {
			data.Light = &LightData{
				Type:            l.Type,
				Color:           l.Color,
				Intensity:       l.Intensity,
				Range:           l.Range,
				ConeAngle:       l.ConeAngle,
				Attenuation:     l.Attenuation,
				CastShadows:     l.CastShadows,
				ShadowNearCoeff: l.ShadowNearCoeff,
				ShadowFarCoeff:  l.ShadowFarCoeff,
			}
		}
		if c := n.Camera(); c != nil {
			data.Camera = &CameraData{FovY: c.FovY, Aspect: c.Aspect, Near: c.Near, Far: c.Far}
		}
		nodes = append(nodes, data)
	})

	preset := PresetData{Nodes: nodes}

	var bytes []byte
	var err error
	if presetIsYAML(filename) {
		bytes, err = yaml.Marshal(&preset)
	} else {
		bytes, err = json.MarshalIndent(preset, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("save preset %s: %w", filename, err)
	}

	return os.WriteFile(filename, bytes, 0644)
}

// LoadPreset rebuilds a scene saved by SavePreset. The first node is the root.
func LoadPreset(filename string) (*core.Node, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var preset PresetData
	if presetIsYAML(filename) {
		err = yaml.Unmarshal(bytes, &preset)
	} else {
		err = json.Unmarshal(bytes, &preset)
	}
	if err != nil {
		return nil, fmt.Errorf("load preset %s: %w", filename, err)
	}
	if len(preset.Nodes) == 0 {
		return nil, fmt.Errorf("load preset %s: no nodes", filename)
	}
	if preset.Nodes[0].HasParent {
		return nil, fmt.Errorf("load preset %s: root node %d has a parent", filename, preset.Nodes[0].ID)
	}

	// First pass: create nodes
	byID := make(map[int]*core.Node, len(preset.Nodes))
	for _, data := range preset.Nodes {
		n := core.NewNode(data.Name)
		n.Local.Position = data.Position
		n.Local.Rotation = data.Rotation
		n.Local.Scale = data.Scale

		if ld := data.Light; ld != nil {
			l := core.NewLight(ld.Type)
			l.Color = ld.Color
			l.Intensity = ld.Intensity
			l.Range = ld.Range
			l.ConeAngle = ld.ConeAngle
			l.Attenuation = ld.Attenuation
			l.CastShadows = ld.CastShadows
			l.ShadowNearCoeff = ld.ShadowNearCoeff
			l.ShadowFarCoeff = ld.ShadowFarCoeff
			n.AttachComponent(l)
		}
		if cd := data.Camera; cd != nil {
			c := core.NewCamera()
			c.FovY, c.Aspect, c.Near, c.Far = cd.FovY, cd.Aspect, cd.Near, cd.Far
			n.AttachComponent(c)
		}
		if _, dup := byID[data.ID]; dup {
			return nil, fmt.Errorf("load preset %s: duplicate node id %d", filename, data.ID)
		}
		byID[data.ID] = n
	}

	// Second pass: restore hierarchy
	for _, data := range preset.Nodes {
		if !data.HasParent {
			continue
		}
		if data.ParentID == data.ID {
			return nil, fmt.Errorf("load preset %s: node %d is its own parent", filename, data.ID)
		}
		parent, ok := byID[data.ParentID]
		if !ok {
			return nil, fmt.Errorf("load preset %s: node %d has unknown parent %d", filename, data.ID, data.ParentID)
		}
		child := byID[data.ID]
		if parent.Root() == child {
			return nil, fmt.Errorf("load preset %s: node %d is an ancestor of its parent %d", filename, data.ID, data.ParentID)
		}
		parent.AttachNode(child)
	}

	return byID[preset.Nodes[0].ID], nil
}
