package shaders

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const stageMarker = "#shader"

var (
	ErrNoStages       = errors.New("no '#shader <type>' markers found")
	ErrStrayCode      = errors.New("code found before the first '#shader <type>' marker")
	ErrUnknownStage   = errors.New("unknown shader type")
	ErrDuplicateStage = errors.New("shader type declared more than once")
	ErrEmptyStage     = errors.New("shader stage has no code")
)

// StageSource is the code of one stage cut out of a combined source file
type StageSource struct {
	Type ShaderType
	Code string
	// Line is the 1-based line of the marker in the combined source
	Line int
}

// SplitSource cuts a combined source into stages.
//
// Each stage starts with a line of the form `#shader <type>` and runs until the next marker
// or the end of the source. Marker lines are not part of the stage code.
func SplitSource(src []byte) ([]StageSource, error) {

	lines := strings.Split(string(src), "\n")
	if !hasMarker(lines) {
		return nil, ErrNoStages
	}

	stages := make([]StageSource, 0, 2)
	seen := make(map[ShaderType]int, 2)

	var code strings.Builder
	current := -1

	finishStage := func() error {

		if current == -1 {
			return nil
		}

		stages[current].Code = code.String()
		if strings.TrimSpace(stages[current].Code) == "" {
			return fmt.Errorf("%w: %s stage at line %d", ErrEmptyStage, stages[current].Type, stages[current].Line)
		}

		code.Reset()
		return nil
	}

	for i := 0; i < len(lines); i++ {

		line := lines[i]
		lineNum := i + 1

		typeName, isMarker := parseMarker(line)
		if !isMarker {

			if current == -1 {

				if strings.TrimSpace(line) != "" {
					return nil, fmt.Errorf("%w: line %d", ErrStrayCode, lineNum)
				}

				continue
			}

			// The empty string after a final newline
			if lineNum == len(lines) && line == "" {
				continue
			}

			code.WriteString(line)
			code.WriteByte('\n')
			continue
		}

		if err := finishStage(); err != nil {
			return nil, err
		}

		if typeName == "" {
			return nil, fmt.Errorf("%w: marker at line %d has no type", ErrUnknownStage, lineNum)
		}

		shaderType := ParseShaderType(typeName)
		if shaderType == ShaderType_Unknown {
			return nil, fmt.Errorf("%w: '%s' at line %d. Must be one of 'vertex', 'fragment' or 'geometry'", ErrUnknownStage, typeName, lineNum)
		}

		if firstLine, ok := seen[shaderType]; ok {
			return nil, fmt.Errorf("%w: %s at line %d was already declared at line %d", ErrDuplicateStage, shaderType, lineNum, firstLine)
		}
		seen[shaderType] = lineNum

		stages = append(stages, StageSource{Type: shaderType, Line: lineNum})
		current = len(stages) - 1
	}

	if err := finishStage(); err != nil {
		return nil, err
	}

	return stages, nil
}

func hasMarker(lines []string) bool {

	for _, line := range lines {
		if _, isMarker := parseMarker(line); isMarker {
			return true
		}
	}

	return false
}

// parseMarker reports whether line is a stage marker and returns the type name written after it
func parseMarker(line string) (typeName string, isMarker bool) {

	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, stageMarker) {
		return "", false
	}

	rest := trimmed[len(stageMarker):]
	if rest == "" {
		return "", true
	}

	// e.g. '#shaderfoo' is not a marker
	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", true
	}

	return fields[0], true
}

// stageCode returns the code of a single stage source of the given type.
// The source may carry one marker matching shaderType, or none.
func stageCode(src string, shaderType ShaderType) (string, error) {

	stages, err := SplitSource([]byte(src))
	if errors.Is(err, ErrNoStages) {

		if strings.TrimSpace(src) == "" {
			return "", fmt.Errorf("%w: %s", ErrEmptyStage, shaderType)
		}

		return src, nil
	}

	if err != nil {
		return "", err
	}

	if len(stages) != 1 {
		return "", fmt.Errorf("expected a single %s stage but found %d stages", shaderType, len(stages))
	}

	if stages[0].Type != shaderType {
		return "", fmt.Errorf("source is marked as a %s stage but is used as a %s stage", stages[0].Type, shaderType)
	}

	return stages[0].Code, nil
}
