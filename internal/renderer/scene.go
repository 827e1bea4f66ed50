package renderer

// ObjectKind tells the renderer how to treat an object in the scene.
type ObjectKind int

const (
	KindMesh ObjectKind = iota
	KindPointLight
	KindAmbientLight
	KindLightHelper
	KindGridHelper
)

func (k ObjectKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPointLight:
		return "point_light"
	case KindAmbientLight:
		return "ambient_light"
	case KindLightHelper:
		return "light_helper"
	case KindGridHelper:
		return "grid_helper"
	}
	return "unknown"
}

// Object is anything that can be added to a Scene.
type Object interface {
	ObjectName() string
	ObjectKind() ObjectKind
}

// Scene is the root container of everything drawn in a frame.
// Objects can only be appended.
type Scene struct {
	objects    []Object
	Background *Texture
}

func NewScene() *Scene {
	return &Scene{}
}

// Add appends objects in order. Nil objects are skipped.
func (s *Scene) Add(objects ...Object) {
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		s.objects = append(s.objects, obj)
	}
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the scene objects in insertion order. The slice must not be modified.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Models returns every drawable object, helpers included.
func (s *Scene) Models() []*Model {
	models := make([]*Model, 0, len(s.objects))
	for _, obj := range s.objects {
		if m, ok := obj.(*Model); ok {
			models = append(models, m)
		}
	}
	return models
}

func (s *Scene) Lights() []*Light {
	var lights []*Light
	for _, obj := range s.objects {
		if l, ok := obj.(*Light); ok {
			lights = append(lights, l)
		}
	}
	return lights
}

// CountKind returns the number of objects of the given kind.
func (s *Scene) CountKind(kind ObjectKind) int {
	n := 0
	for _, obj := range s.objects {
		if obj.ObjectKind() == kind {
			n++
		}
	}
	return n
}
