package system

import (
	"github.com/plus3/explore/component"
	"github.com/plus3/explore/ecs"
	"github.com/plus3/explore/geom"
)

// CameraMovement centres the camera on the followed entity and keeps it
// inside the map.
type CameraMovement struct {
	ecs.BaseSystem
}

func NewCameraMovement() *CameraMovement {
	s := &CameraMovement{BaseSystem: ecs.NewBaseSystem("CameraMovementSystem")}
	ecs.Require[component.CameraFollow](&s.BaseSystem)
	ecs.Require[component.Transform](&s.BaseSystem)
	return s
}

// Update moves camera so the followed entity is centred, clamped to a map of
// mapW x mapH world units.
func (s *CameraMovement) Update(r *ecs.Registry, camera *geom.Rect, mapW, mapH float64) {
	for _, e := range s.Entities() {
		t := ecs.GetComponent[component.Transform](r, e)
		camera.X = geom.Clamp(t.Position.X-camera.W/2, 0, mapW-camera.W)
		camera.Y = geom.Clamp(t.Position.Y-camera.H/2, 0, mapH-camera.H)
	}
}
