package config

import "time"

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Particle Morph - Left/Right: slides, O: open images, Click: scatter title, Esc/Q: quit"

	// Sampling canvas every slide is scaled into
	CanvasWidth  = 240
	CanvasHeight = 240

	// Agent motion
	SmoothingFactor = 0.1
	SpinMax         = 0.05
	Magnification   = 3.0
	JitterBase      = 2.0
	JitterSpread    = 4.0
	DepthBase       = 40.0
	DepthSpread     = 20.0
	DisperseDelay   = 500 * time.Millisecond
	AgentRadius     = 2.0
	SettleDistance  = 0.5

	// Camera
	FieldOfView   = 75.0
	NearPlane     = 1.0
	FarPlane      = 3000.0
	CameraDepth   = 800.0
	CameraFPS     = 60
	CameraSpringF = 6.0
	CameraDamping = 1.0

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50
	ArrowSize    = 40

	// Backdrop
	SphereCount      = 40
	SphereRadius     = 10.0
	FloaterCount     = 300
	BackdropDelay    = 4 * time.Second
	FadeStep         = 0.01
	FadeInterval     = 30 * time.Millisecond
	SpringTextDelay  = 6 * time.Second
	CompactThreshold = 600

	// Decoding
	DecodeWorkers = 4

	// Audio
	CueSampleRate = 44100
	CueDuration   = 350 * time.Millisecond
	CueRingSize   = 4096
)

// Palette is the default agent and title palette.
var Palette = []string{"#F7A541", "#F45D4C", "#FA2E59", "#4783c3", "#9c6cb7"}
