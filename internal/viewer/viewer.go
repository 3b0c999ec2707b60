// Package viewer implements the road preview window and its main loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/config"
	"github.com/Faultbox/roadgen/internal/engine/camera"
	"github.com/Faultbox/roadgen/internal/engine/input"
	"github.com/Faultbox/roadgen/internal/engine/meshview"
	"github.com/Faultbox/roadgen/internal/engine/screenshot"
	"github.com/Faultbox/roadgen/internal/engine/window"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/internal/scene"
)

// terrainStep is the grid stride of the preview terrain mesh.
const terrainStep = 2

// Viewer previews one road file on the configured terrain.
type Viewer struct {
	cfg      *config.Config
	path     string
	running  bool
	scene    *scene.Scene
	road     *road.Asset
	window   *window.Window
	renderer *meshview.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *screenshot.Capture
	// capture requests a screenshot of the next drawn frame.
	capture bool
}

// New opens the scene, loads the road at path and creates the window.
func New(cfg *config.Config, path string) (*Viewer, error) {
	s, err := scene.Open(cfg)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:    cfg,
		path:   path,
		scene:  s,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  screenshot.New(cfg.Viewer.ScreenshotDir, "roadview"),
	}

	// Window first: the renderer needs its OpenGL context.
	v.window, err = window.New(window.Config{
		Title:  "roadgen - " + path,
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = meshview.New(meshview.Config{
		Width:     width,
		Height:    height,
		Wireframe: cfg.Viewer.Wireframe,

		SunAzimuth:   cfg.Viewer.SunAzimuth,
		SunElevation: cfg.Viewer.SunElevation,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	if err := v.reload(); err != nil {
		v.Close()
		return nil, err
	}
	v.submitTerrain()
	if b, ok := v.renderer.Bounds(); ok {
		v.camera.FitBounds(b.Min, b.Max)
	}

	logger.Info("viewer initialized", zap.String("road", path))
	return v, nil
}

// reload reads the road file again and rebuilds it.
func (v *Viewer) reload() error {
	a, err := road.LoadFile(v.path)
	if err != nil {
		return fmt.Errorf("load road: %w", err)
	}
	a.AttachWorld(v.renderer)
	v.road = a
	return v.rebuild()
}

func (v *Viewer) rebuild() error {
	_, err := v.road.Rebuild(v.scene.World)
	return err
}

func (v *Viewer) submitTerrain() {
	if err := v.renderer.Submit("scene/terrain", scene.TerrainMesh(v.scene.Terrain, terrainStep)); err != nil {
		logger.Warn("terrain upload failed", zap.Error(err))
	}
}

// Run starts the main loop. It returns when the window is closed or
// Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			if err := v.handle(event); err != nil {
				logger.Warn("command failed", zap.Error(err))
			}
		}
		v.move(dt)

		width, height := v.window.Size()
		aspect := float32(width) / float32(max(height, 1))
		v.renderer.Draw(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.cfg.Viewer.FOV, aspect))
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handle applies one input event.
//
//	Esc  quit        F  toggle wireframe   R  reload road file
//	M    match elevation of the control points to the ground
//	T    raise terrain under the road
//	P    save a screenshot
func (v *Viewer) handle(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(event.Width, event.Height)
	case input.EventMouseMove:
		if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
			v.camera.HandleDrag(event.DeltaX, event.DeltaY)
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.DeltaY)
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_F:
			v.renderer.SetWireframe(!v.renderer.Wireframe())
		case sdl.SCANCODE_R:
			return v.reload()
		case sdl.SCANCODE_M:
			res := v.road.MatchElevation(v.scene.World)
			logger.Info("elevation matched", zap.Int("hits", res.Hits), zap.Int("misses", res.Misses))
			return v.rebuild()
		case sdl.SCANCODE_T:
			res, err := v.road.ElevateTerrain(v.scene.World, v.scene.World)
			if err != nil {
				return err
			}
			logger.Info("terrain elevated", zap.Int("cells", res.Cells))
			v.submitTerrain()
		case sdl.SCANCODE_P:
			v.capture = true
		}
	}
	return nil
}

// saveScreenshot reads back the frame just drawn, before it is swapped.
func (v *Viewer) saveScreenshot() {
	path, err := v.shots.SavePixels(v.renderer.ReadPixels())
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// move pans the camera with WASD, Space and Left Shift.
func (v *Viewer) move(dt float32) {
	axis := func(pos, neg sdl.Scancode) float32 {
		var a float32
		if v.input.IsKeyDown(pos) {
			a++
		}
		if v.input.IsKeyDown(neg) {
			a--
		}
		return a
	}
	forward := axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	right := axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	up := axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LSHIFT)
	if forward != 0 || right != 0 || up != 0 {
		// HandleMovement steps are tuned for 60 frames per second.
		scale := dt * 60
		v.camera.HandleMovement(forward*scale, right*scale, up*scale)
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
