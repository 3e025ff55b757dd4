// Package renderer draws driver frames with OpenGL: the robot's primitives,
// the floor, key-light shadows and the particle backdrop.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/robostage/internal/assets"
	"github.com/Faultbox/robostage/internal/engine/driver"
	"github.com/Faultbox/robostage/internal/engine/lighting"
	"github.com/Faultbox/robostage/internal/engine/model"
	"github.com/Faultbox/robostage/internal/engine/scene"
	"github.com/Faultbox/robostage/internal/engine/shader"
	"github.com/Faultbox/robostage/internal/engine/shader/glsl"
	"github.com/Faultbox/robostage/internal/engine/shadow"
	"github.com/Faultbox/robostage/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Scene  scene.Config
}

// Renderer handles all OpenGL rendering. It must be created and used on the
// thread that owns the GL context.
type Renderer struct {
	config Config
	scene  *scene.Scene

	rig       *shader.Program
	depth     *shader.Program
	particles *shader.Program

	// Nil when the driver cannot build a depth framebuffer.
	shadows *shadow.Map

	// Uploaded per model; freed by Release.
	meshes map[assets.Shape]*gpuMesh
	model  *assets.Model

	ground       *gpuMesh
	particleBox  *gpuMesh
	particleVAO  uint32
	instanceVBO  uint32
	instanceSize int

	log *zap.Logger
}

var _ driver.Renderer = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		scene:  scene.New(cfg.Scene),
		meshes: make(map[assets.Shape]*gpuMesh),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.rig, err = shader.NewProgram(glsl.RigVertex, glsl.RigFragment); err != nil {
		return nil, fmt.Errorf("rig program: %w", err)
	}
	if r.depth, err = shader.NewProgram(glsl.ShadowVertex, glsl.ShadowFragment); err != nil {
		r.rig.Delete()
		return nil, fmt.Errorf("shadow program: %w", err)
	}
	if r.particles, err = shader.NewProgram(glsl.ParticleVertex, glsl.ParticleFragment); err != nil {
		r.rig.Delete()
		r.depth.Delete()
		return nil, fmt.Errorf("particle program: %w", err)
	}

	r.shadows = shadow.NewMap(r.scene.Lights.Shadow.Resolution)
	if !r.shadows.IsValid() {
		r.log.Warn("shadow framebuffer incomplete, drawing without shadows")
	}

	r.ground = uploadMesh(model.Plane())
	r.particleBox = uploadMesh(model.Box())
	r.createParticleVAO()
	return r, nil
}

// Upload creates the primitive meshes the model's parts use.
func (r *Renderer) Upload(m *assets.Model) error {
	shapes := make(map[assets.Shape]bool)
	collect := func(parts []assets.Part) {
		for _, p := range parts {
			shapes[p.Shape] = true
		}
	}
	collect(m.Parts)
	if m.Attachment != nil {
		collect(m.Attachment.Parts)
	}

	for s := range shapes {
		mesh, err := buildShape(s)
		if err != nil {
			r.Release()
			return err
		}
		r.meshes[s] = uploadMesh(mesh)
	}
	r.model = m
	r.log.Info("model uploaded", zap.String("model", m.Name), zap.Int("shapes", len(r.meshes)))
	return nil
}

func buildShape(s assets.Shape) (*model.Mesh, error) {
	switch s {
	case assets.ShapeBox:
		return model.Box(), nil
	case assets.ShapeSphere:
		return model.Sphere(16, 24), nil
	case assets.ShapeCylinder:
		return model.Cylinder(24), nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", s)
	}
}

// Release frees the meshes created by Upload.
func (r *Renderer) Release() {
	for s, m := range r.meshes {
		m.delete()
		delete(r.meshes, s)
	}
	r.model = nil
}

// Close frees everything.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.Release()
	r.ground.delete()
	r.particleBox.delete()
	if r.particleVAO != 0 {
		gl.DeleteVertexArrays(1, &r.particleVAO)
	}
	if r.instanceVBO != 0 {
		gl.DeleteBuffers(1, &r.instanceVBO)
	}
	if r.shadows.IsValid() {
		r.shadows.Destroy()
	}
	r.rig.Delete()
	r.depth.Delete()
	r.particles.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Render draws one frame.
func (r *Renderer) Render(f *driver.Frame) {
	r.scene.Build(f)
	s := r.scene

	shadowed := r.shadows.IsValid() && len(s.Items) > 0
	if shadowed {
		r.drawShadows(s)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if s.ParticleCount > 0 {
		r.drawParticles(s)
		gl.Clear(gl.DEPTH_BUFFER_BIT)
	}

	r.rig.Use()
	r.setLights(s)
	r.setShadow(s, shadowed)

	gl.Enable(gl.BLEND)
	r.drawItem(r.ground, s.Ground, s.Config.GroundOpacity)
	gl.Disable(gl.BLEND)

	for i := range s.Items {
		it := &s.Items[i]
		if m, ok := r.meshes[it.Shape]; ok {
			r.drawItem(m, *it, 1)
		}
	}
}

func (r *Renderer) setLights(s *scene.Scene) {
	p := r.rig
	l := s.Lights
	p.SetMat4("uViewProj", s.ViewProj)
	p.SetVec3("uCameraPos", s.CameraPos)
	p.SetVec3("uAmbient", l.Ambient)
	p.SetVec3("uKeyDir", l.Key.Direction)
	p.SetVec3("uKeyColor", l.Key.Radiance())
	p.SetVec3("uFillDir", l.Fill.Direction)
	p.SetVec3("uFillColor", l.Fill.Radiance())
	p.SetVec3Array("uPointPos", l.Points.Positions())
	p.SetVec3Array("uPointColor", l.Points.Colors())
	p.SetFloatArray("uPointRange", l.Points.Ranges())
	p.SetInt("uPointCount", int32(min(l.Points.Count, lighting.MaxPointLights)))
	p.SetFloat("uExposure", s.Config.Exposure)
}

// drawShadows renders the parts' depth from the key light. The ground only
// receives shadows.
func (r *Renderer) drawShadows(s *scene.Scene) {
	r.shadows.Begin()
	r.depth.Use()
	r.depth.SetMat4("uLightSpace", s.LightSpace)
	for i := range s.Items {
		it := &s.Items[i]
		if m, ok := r.meshes[it.Shape]; ok {
			r.depth.SetMat4("uModel", it.Model)
			m.draw()
		}
	}
	r.shadows.End()
}

func (r *Renderer) setShadow(s *scene.Scene, enabled bool) {
	p := r.rig
	p.SetMat4("uLightSpace", s.LightSpace)
	p.SetInt("uShadowMap", 0)
	if !enabled {
		p.SetInt("uShadowEnabled", 0)
		return
	}
	r.shadows.BindTexture(gl.TEXTURE0)
	p.SetInt("uShadowEnabled", 1)
	p.SetFloat("uShadowTexel", s.Lights.Shadow.TexelSize())
	p.SetFloat("uShadowRadius", s.Lights.Shadow.Radius)
}

func (r *Renderer) drawItem(m *gpuMesh, it scene.DrawItem, opacity float32) {
	p := r.rig
	p.SetMat4("uModel", it.Model)
	p.SetMat4("uNormal", it.Normal)
	p.SetVec3("uColor", it.Color)
	p.SetVec3("uEmissive", it.Emissive)
	p.SetFloat("uMetalness", it.Metalness)
	p.SetFloat("uRoughness", it.Roughness)
	p.SetFloat("uOpacity", opacity)
	m.draw()
}

func (r *Renderer) drawParticles(s *scene.Scene) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	if n := len(s.Particles); n > r.instanceSize {
		gl.BufferData(gl.ARRAY_BUFFER, n*4, gl.Ptr(s.Particles), gl.STREAM_DRAW)
		r.instanceSize = n
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*4, gl.Ptr(s.Particles))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.particles.Use()
	r.particles.SetMat4("uViewProj", s.BackdropViewProj)
	gl.BindVertexArray(r.particleVAO)
	gl.DrawElementsInstanced(gl.TRIANGLES, r.particleBox.count, gl.UNSIGNED_INT, nil, int32(s.ParticleCount))
	gl.BindVertexArray(0)
}
