// Package meshview draws road meshes with OpenGL.
package meshview

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/engine/shader"
	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/math"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	vNormal = aNormal;
	gl_Position = uProj * uView * vec4(aPos, 1.0);
}
` + "\x00"

const fragmentShader = `
#version 410 core

in vec3 vNormal;
uniform vec3 uColor;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	FragColor = vec4(uColor * (0.35 + 0.65 * diffuse), 1.0);
}
` + "\x00"

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
	// Sun position in degrees, see SunDirection.
	SunAzimuth   float32
	SunElevation float32
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	color         math.Vec3
	bounds        sweep.Bounds
}

func (g *gpuMesh) release() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// Renderer keeps one GPU buffer set per submitted mesh name. It
// satisfies road.MeshSink, so an asset can push rebuilt meshes to it.
// Must be created and used on the thread owning the GL context.
type Renderer struct {
	config   Config
	program  *shader.Program
	meshes   map[string]*gpuMesh
	lightDir math.Vec3
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create mesh shader: %w", err)
	}

	r := &Renderer{
		config:   cfg,
		program:  program,
		meshes:   make(map[string]*gpuMesh),
		lightDir: SunDirection(cfg.SunAzimuth, cfg.SunElevation),
	}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Submit replaces the buffers held under name. An empty mesh removes them.
func (r *Renderer) Submit(name string, mesh *sweep.Mesh) error {
	if old, ok := r.meshes[name]; ok {
		old.release()
		delete(r.meshes, name)
	}
	if mesh == nil || mesh.IsEmpty() {
		return nil
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("submit %s: %w", name, err)
	}

	data := interleave(mesh)
	g := &gpuMesh{
		count:  int32(len(mesh.Indices)),
		color:  colorFor(name),
		bounds: mesh.Bounds(),
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[name] = g
	logger.Debug("mesh uploaded",
		zap.String("name", name),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Indices)/3),
	)
	return nil
}

// Bounds returns the union of all uploaded mesh bounds.
func (r *Renderer) Bounds() (sweep.Bounds, bool) {
	var out sweep.Bounds
	first := true
	for _, g := range r.meshes {
		if first {
			out, first = g.bounds, false
			continue
		}
		out.Min = math.Vec3{X: min(out.Min.X, g.bounds.Min.X), Y: min(out.Min.Y, g.bounds.Min.Y), Z: min(out.Min.Z, g.bounds.Min.Z)}
		out.Max = math.Vec3{X: max(out.Max.X, g.bounds.Max.X), Y: max(out.Max.Y, g.bounds.Max.Y), Z: max(out.Max.Z, g.bounds.Max.Z)}
	}
	return out, !first
}

// SetWireframe toggles line rendering.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
}

// Wireframe reports whether line rendering is on.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Draw clears the frame and draws every mesh in name order.
func (r *Renderer) Draw(view, proj math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProj", proj)
	r.program.SetVec3("uLightDir", r.lightDir)

	names := make([]string, 0, len(r.meshes))
	for name := range r.meshes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g := r.meshes[name]
		r.program.SetVec3("uColor", g.color)
		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// ReadPixels reads back the current frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Close frees all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for name, g := range r.meshes {
		g.release()
		delete(r.meshes, name)
	}
	if r.program != nil {
		r.program.Delete()
	}
}
