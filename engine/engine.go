package engine

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/nw-engine/vision/assert"
	"github.com/nw-engine/vision/logging"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false
)

type ContextConfig struct {
	GLMajor int
	GLMinor int
	// Visible shows the window owning the context. Shader tools usually keep it hidden.
	Visible bool
}

// Context is an OpenGL context owned by an SDL window
type Context struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
}

func (c *Context) Destroy() error {
	sdl.GLDeleteContext(c.GlCtx)
	return c.SDLWin.Destroy()
}

// Init must be called before creating a context, from the goroutine that will do all the rendering.
// It locks that goroutine to its OS thread, since OpenGL contexts are per thread.
func Init(cfg ContextConfig) error {

	isInited = true

	runtime.LockOSThread()
	return initSDL(cfg)
}

func Quit() {
	sdl.Quit()
	isInited = false
}

func initSDL(cfg ContextConfig) error {

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, cfg.GLMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, cfg.GLMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	return nil
}

func CreateOpenGLContext(title string, cfg ContextConfig) (*Context, error) {

	assert.T(isInited, "engine.Init() was not called!")

	flags := uint32(sdl.WINDOW_OPENGL)
	if cfg.Visible {
		flags |= sdl.WINDOW_SHOWN
	} else {
		flags |= sdl.WINDOW_HIDDEN
	}

	sdlWin, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 64, 64, flags)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		SDLWin: sdlWin,
	}

	ctx.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, fmt.Errorf("failed to create OpenGL %d.%d context: %w", cfg.GLMajor, cfg.GLMinor, err)
	}

	if err := gl.Init(); err != nil {
		ctx.Destroy()
		return nil, err
	}

	logging.InfoLog.Printf("Created OpenGL context. Version=%s; Renderer=%s\n", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return ctx, nil
}
