package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/particle-morph/internal/config"
	"github.com/iburimskiy/particle-morph/internal/morph"
)

// Camera is a perspective camera that always looks at the origin and drifts
// against the pointer for a parallax effect.
type Camera struct {
	Position morph.Vec3

	target     morph.Vec3
	velX, velY float64
	spring     harmonica.Spring

	fov, near, far float64
	width, height  float64
	focal          float64
}

func New(width, height int) *Camera {
	c := &Camera{
		Position: morph.Vec3{Z: config.CameraDepth},
		target:   morph.Vec3{Z: config.CameraDepth},
		spring:   harmonica.NewSpring(harmonica.FPS(config.CameraFPS), config.CameraSpringF, config.CameraDamping),
		fov:      config.FieldOfView * math.Pi / 180,
		near:     config.NearPlane,
		far:      config.FarPlane,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio and focal length after a resize.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = float64(width), float64(height)
	c.focal = (c.height / 2) / math.Tan(c.fov/2)
}

func (c *Camera) Viewport() (float64, float64) { return c.width, c.height }

func (c *Camera) Aspect() float64 { return c.width / c.height }

// Follow aims the camera away from the pointer given in screen pixels. A
// pointer outside the viewport counts as being on its edge.
func (c *Camera) Follow(px, py float64) {
	mouseX := clamp(px, 0, c.width) - c.width/2
	mouseY := clamp(py, 0, c.height) - c.height/2
	c.target.X = -mouseX / 2
	c.target.Y = mouseY / 2
}

// Update advances the camera one frame towards its target. The drift never
// leaves a quarter of the viewport either side of the z axis.
func (c *Camera) Update() {
	c.Position.X, c.velX = c.spring.Update(c.Position.X, c.velX, c.target.X)
	c.Position.Y, c.velY = c.spring.Update(c.Position.Y, c.velY, c.target.Y)
	c.Position.X = clamp(c.Position.X, -c.width/4, c.width/4)
	c.Position.Y = clamp(c.Position.Y, -c.height/4, c.height/4)
}

// ClearRadius is the distance from the z axis beyond which no point with
// z >= 0 can appear on screen, wherever the drift has taken the camera.
//
// Every visible point lies in the circular cone around the view axis that
// holds the screen's corners. Points with 0 <= z <= depth sit between the
// camera and the z = 0 plane, so the cone's widest reach there bounds them;
// higher points are behind the camera. The far plane caps the result when
// the cone is too wide to meet the plane in a closed curve.
func (c *Camera) ClearRadius() float64 {
	drift := math.Hypot(c.width/4, c.height/4)
	dist := math.Hypot(config.CameraDepth, drift)
	sinTilt, cosTilt := drift/dist, config.CameraDepth/dist
	tanHalf := math.Hypot(c.width/2, c.height/2) / c.focal

	limit := c.far*math.Sqrt(1+tanHalf*tanHalf) + dist
	if den := cosTilt - tanHalf*sinTilt; den > 0 {
		limit = math.Min(limit, dist*tanHalf/den)
	}
	return limit
}

// Project maps a world point to screen pixels. scale is the on-screen size
// of one world unit at that depth; ok is false outside the clip range.
func (c *Camera) Project(p morph.Vec3) (sx, sy, scale float64, ok bool) {
	forward := c.Position.Scale(-1).Normalize()
	right := forward.Cross(morph.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	d := p.Sub(c.Position)
	depth := d.Dot(forward)
	if depth < c.near || depth > c.far {
		return 0, 0, 0, false
	}

	scale = c.focal / depth
	sx = c.width/2 + d.Dot(right)*scale
	sy = c.height/2 - d.Dot(up)*scale
	return sx, sy, scale, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
