package shaders

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nw-engine/vision/buffers"
	"github.com/nw-engine/vision/logging"
)

var (
	lineCommentRegex  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	vertexInputRegex  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*;`)
	uniformBlockRegex = regexp.MustCompile(`(?s)(?:layout\s*\([^)]*\)\s*)?uniform\s+(\w+)\s*\{(.*?)\}\s*\w*\s*;`)
	blockMemberRegex  = regexp.MustCompile(`^(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?$`)
	uniformRegex      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

// Reflection is what could be learned about a program by reading its source.
// The driver's compiler stays the authority; reflection never fails.
type Reflection struct {
	VertexLayout buffers.VertexBufLayout
	Blocks       []buffers.ShaderBufLayout
	// Uniforms are the names of uniforms declared outside of blocks
	Uniforms []string
}

func Reflect(stages []StageSource) Reflection {

	r := Reflection{
		VertexLayout: buffers.NewVertexBufLayout(),
	}

	seenBlocks := map[string]struct{}{}
	seenUniforms := map[string]struct{}{}

	for i := 0; i < len(stages); i++ {

		code := stripComments(stages[i].Code)

		if stages[i].Type == ShaderType_Vertex {
			r.VertexLayout = reflectVertexLayout(code)
		}

		for _, block := range reflectBlocks(code) {

			if _, ok := seenBlocks[block.Name]; ok {
				continue
			}

			seenBlocks[block.Name] = struct{}{}
			r.Blocks = append(r.Blocks, block)
		}

		for _, m := range uniformRegex.FindAllStringSubmatch(code, -1) {

			if _, ok := seenUniforms[m[1]]; ok {
				continue
			}

			seenUniforms[m[1]] = struct{}{}
			r.Uniforms = append(r.Uniforms, m[1])
		}
	}

	return r
}

func stripComments(code string) string {
	code = blockCommentRegex.ReplaceAllString(code, "")
	return lineCommentRegex.ReplaceAllString(code, "")
}

func reflectVertexLayout(code string) buffers.VertexBufLayout {

	matches := vertexInputRegex.FindAllStringSubmatch(code, -1)
	elements := make([]buffers.Element, 0, len(matches))

	for _, m := range matches {

		elemType, ok := buffers.ElementTypeFromGLSL(m[2])
		if !ok {
			logging.WarnLog.Printf("Vertex input '%s' has unsupported type '%s' and will not be part of the vertex layout\n", m[3], m[2])
			continue
		}

		loc := int32(-1)
		if m[1] != "" {
			parsed, err := strconv.ParseInt(m[1], 10, 32)
			if err == nil {
				loc = int32(parsed)
			}
		}

		elements = append(elements, buffers.Element{Name: m[3], Location: loc, ElementType: elemType})
	}

	// Explicit locations first, then the rest in declaration order
	sort.SliceStable(elements, func(i, j int) bool {

		li, lj := elements[i].Location, elements[j].Location
		if li < 0 || lj < 0 {
			return li >= 0 && lj < 0
		}

		return li < lj
	})

	return buffers.NewVertexBufLayout(elements...)
}

func reflectBlocks(code string) []buffers.ShaderBufLayout {

	matches := uniformBlockRegex.FindAllStringSubmatch(code, -1)
	blocks := make([]buffers.ShaderBufLayout, 0, len(matches))

	for _, m := range matches {

		blockName := m[1]
		fields, ok := reflectBlockMembers(blockName, m[2])
		if !ok {
			continue
		}

		layout, err := buffers.NewShaderBufLayout(blockName, fields)
		if err != nil {
			logging.WarnLog.Printf("Skipping reflection of uniform block '%s'. Err: %s\n", blockName, err)
			continue
		}

		blocks = append(blocks, layout)
	}

	return blocks
}

func reflectBlockMembers(blockName, body string) ([]buffers.ShaderBufFieldInput, bool) {

	decls := strings.Split(body, ";")
	fields := make([]buffers.ShaderBufFieldInput, 0, len(decls))

	for _, decl := range decls {

		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}

		m := blockMemberRegex.FindStringSubmatch(decl)
		if m == nil {
			logging.WarnLog.Printf("Skipping reflection of uniform block '%s' because member '%s' could not be understood\n", blockName, decl)
			return nil, false
		}

		elemType, ok := buffers.ElementTypeFromGLSL(m[1])
		if !ok {
			logging.WarnLog.Printf("Skipping reflection of uniform block '%s' because member '%s' has unsupported type '%s'\n", blockName, m[2], m[1])
			return nil, false
		}

		field := buffers.ShaderBufFieldInput{Name: m[2], Type: elemType}
		if m[3] != "" {
			count, _ := strconv.ParseUint(m[3], 10, 32)
			field.Count = uint32(count)
			field.IsArray = true
		}

		fields = append(fields, field)
	}

	return fields, true
}
