package engine

import "fmt"

// Scene is the read-only host model handed to the exporter. Cameras,
// Lights and Instances keep the order they were enumerated in.
type Scene struct {
	Name      string
	Objects   []*GameObject
	Cameras   []*Camera
	Lights    []*Light
	Instances []*MeshInstance
	World     *World
	Meshes    map[string]*Mesh

	byName map[string]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Objects: make([]*GameObject, 0),
		Meshes:  make(map[string]*Mesh),
		byName:  make(map[string]*GameObject),
	}
}

// AddGameObject appends g. Object names are unique in the host, so a
// duplicate name is an error.
func (s *Scene) AddGameObject(g *GameObject) error {
	if _, ok := s.byName[g.Name]; ok {
		return fmt.Errorf("duplicate object name %q", g.Name)
	}
	g.Scene = s
	s.Objects = append(s.Objects, g)
	s.byName[g.Name] = g
	return nil
}

func (s *Scene) FindByName(name string) *GameObject {
	return s.byName[name]
}

func (s *Scene) AddMesh(m *Mesh) {
	s.Meshes[m.Name] = m
}

func (s *Scene) Mesh(name string) *Mesh {
	return s.Meshes[name]
}

// HasMeshes reports whether any mesh instance was enumerated.
func (s *Scene) HasMeshes() bool {
	return len(s.Instances) > 0
}
