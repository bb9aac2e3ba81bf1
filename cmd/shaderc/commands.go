package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nw-engine/vision/logging"
	"github.com/nw-engine/vision/shaders"
)

var errChecksFailed = errors.New("some shaders failed to compile")

// checkFiles compiles every file and reports one line per file to out
func checkFiles(drv shaders.Driver, files []string, out io.Writer) error {

	failed := 0
	for _, f := range files {

		sp, err := shaders.LoadAndCompileCombinedShader(programName(f), f, drv)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %s\n", f, err)
			continue
		}

		r := sp.VertexLayout()
		fmt.Fprintf(out, "ok   %s (vertex stride=%d, blocks=%d, uniforms=%d)\n", f, r.Stride, len(sp.ShaderLayouts()), len(sp.Uniforms()))
		sp.Reset()
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errChecksFailed, failed, len(files))
	}

	return nil
}

// splitFile writes every stage of a combined file to outDir as '<name>.<type>.glsl'
func splitFile(path, outDir string) ([]string, error) {

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stages, err := shaders.SplitSource(src)
	if err != nil {
		return nil, fmt.Errorf("failed to split '%s': %w", path, err)
	}

	if outDir == "" {
		outDir = filepath.Dir(path)
	}

	written := make([]string, 0, len(stages))
	for _, stage := range stages {

		name := programName(path) + "." + stage.Type.String()
		chunk := shaders.NewCodeChunk(name, "#shader "+stage.Type.String()+"\n"+stage.Code)

		outPath := filepath.Join(outDir, name+".glsl")
		if err := chunk.SaveFile(outPath); err != nil {
			return written, err
		}

		written = append(written, outPath)
	}

	return written, nil
}

// watchFiles recompiles files as they change until ctx is done
func watchFiles(ctx context.Context, drv shaders.Driver, files []string, interval time.Duration, out io.Writer) error {

	w, err := shaders.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, f := range files {

		sp := shaders.New(programName(f), drv)
		if err := sp.LoadFile(f); err != nil {
			return err
		}

		if err := sp.Compile(); err != nil {
			fmt.Fprintf(out, "FAIL %s: %s\n", f, err)
		} else {
			fmt.Fprintf(out, "ok   %s\n", f)
		}

		if err := w.Watch(sp); err != nil {
			return err
		}
	}

	logging.InfoLog.Printf("Watching %d shader files\n", len(files))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {

		case <-ctx.Done():
			return nil

		case <-ticker.C:

			for _, res := range w.Poll() {

				if res.Err != nil {
					fmt.Fprintf(out, "FAIL %s: %s\n", res.Program.Path(), res.Err)
					continue
				}

				fmt.Fprintf(out, "ok   %s\n", res.Program.Path())
			}
		}
	}
}

func programName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
