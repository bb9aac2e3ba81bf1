package main

import (
	"io"

	"github.com/nw-engine/vision/engine"
	"github.com/nw-engine/vision/shaders"
	"github.com/nw-engine/vision/shaders/shadercout"
	"github.com/nw-engine/vision/shaders/shadergl"
)

// newDriver returns the driver to compile with and a function releasing it
func newDriver(cfg Config, verbose io.Writer) (shaders.Driver, func(), error) {

	if cfg.Dry {
		return shadercout.New(verbose), func() {}, nil
	}

	ctxCfg := engine.ContextConfig{GLMajor: cfg.GLMajor, GLMinor: cfg.GLMinor}
	if err := engine.Init(ctxCfg); err != nil {
		return nil, nil, err
	}

	ctx, err := engine.CreateOpenGLContext("shaderc", ctxCfg)
	if err != nil {
		engine.Quit()
		return nil, nil, err
	}

	release := func() {
		ctx.Destroy()
		engine.Quit()
	}

	return shadergl.New(), release, nil
}
