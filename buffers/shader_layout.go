package buffers

import (
	"fmt"
	"strconv"
)

type ShaderBufFieldInput struct {
	Name string
	Type ElementType
	// Count should be set in case this field is an array of type `[Count]Type`.
	// Count=0 is valid and is equivalent to Count=1, which means the type is NOT an array, but a single field.
	Count uint32
	// IsArray forces array layout for Count<=1, since std140 lays out `T name[1]` unlike `T name`
	IsArray bool

	// Subfields holds the members when Type is DataTypeStruct
	Subfields []ShaderBufFieldInput
}

type ShaderBufField struct {
	// Name is the GLSL path of the field, e.g. `lights[1].color` for struct members
	Name   string
	Type   ElementType
	Count  uint32
	Offset uint32
	// ArrayStride is the distance in bytes between array elements, 0 for non-arrays
	ArrayStride uint32
}

// ShaderBufLayout is the std140 layout of one uniform block
type ShaderBufLayout struct {
	Name string
	// Size is the number of bytes the block needs, padded to a vec4
	Size   uint32
	Fields []ShaderBufField
}

func (sl *ShaderBufLayout) Field(name string) (ShaderBufField, bool) {

	for i := 0; i < len(sl.Fields); i++ {
		if sl.Fields[i].Name == name {
			return sl.Fields[i], true
		}
	}

	return ShaderBufField{}, false
}

func NewShaderBufLayout(blockName string, fields []ShaderBufFieldInput) (ShaderBufLayout, error) {

	sl := ShaderBufLayout{
		Name:   blockName,
		Fields: make([]ShaderBufField, 0, len(fields)),
	}

	size, err := layoutStd140Fields("", 0, fields, &sl.Fields)
	if err != nil {
		return ShaderBufLayout{}, fmt.Errorf("failed to lay out uniform block '%s': %w", blockName, err)
	}

	sl.Size = alignUp(size, 16)
	return sl, nil
}

// layoutStd140Fields appends the fields to out (when out is not nil) starting at baseOffset,
// and returns the number of bytes used relative to baseOffset
func layoutStd140Fields(prefix string, baseOffset uint32, fieldsToAdd []ShaderBufFieldInput, out *[]ShaderBufField) (uint32, error) {

	var offset uint32
	seenNames := make(map[string]struct{}, len(fieldsToAdd))

	for i := 0; i < len(fieldsToAdd); i++ {

		f := fieldsToAdd[i]
		if f.Name == "" {
			return 0, fmt.Errorf("field at index %d has no name", i)
		}

		if _, ok := seenNames[f.Name]; ok {
			return 0, fmt.Errorf("field name '%s' is used more than once", prefix+f.Name)
		}
		seenNames[f.Name] = struct{}{}

		count := f.Count
		if count == 0 {
			count = 1
		}
		isArray := f.IsArray || f.Count > 1
		fullName := prefix + f.Name

		switch {

		case f.Type == DataTypeStruct:

			if len(f.Subfields) == 0 {
				return 0, fmt.Errorf("struct field '%s' has no members", fullName)
			}

			structSize, err := layoutStd140Fields("", 0, f.Subfields, nil)
			if err != nil {
				return 0, err
			}

			// Structs are aligned to a vec4 and padded to one
			stride := alignUp(structSize, 16)
			offset = alignUp(offset, 16)

			field := ShaderBufField{Name: fullName, Type: f.Type, Count: count, Offset: baseOffset + offset}
			if isArray {
				field.ArrayStride = stride
			}
			appendField(out, field)

			for elem := uint32(0); elem < count; elem++ {

				elemPrefix := fullName + "."
				if isArray {
					elemPrefix = fullName + "[" + strconv.FormatUint(uint64(elem), 10) + "]."
				}

				if _, err := layoutStd140Fields(elemPrefix, baseOffset+offset+elem*stride, f.Subfields, out); err != nil {
					return 0, err
				}
			}

			offset += stride * count

		case f.Type == DataTypeUnknown || f.Type > DataTypeStruct:
			return 0, fmt.Errorf("field '%s' has unknown type '%d'", fullName, f.Type)

		case isArray || f.Type.MatrixColumns() > 0:

			// Arrays and matrices are arrays of vec4 aligned elements (matrices being arrays of columns)
			stride := alignUp(f.Type.Std140Size(), 16)
			if f.Type.MatrixColumns() > 0 {
				stride = 16 * f.Type.MatrixColumns()
			}

			offset = alignUp(offset, 16)

			field := ShaderBufField{Name: fullName, Type: f.Type, Count: count, Offset: baseOffset + offset}
			if isArray {
				field.ArrayStride = stride
			}
			appendField(out, field)

			offset += stride * count

		default:

			offset = alignUp(offset, f.Type.Std140Alignment())
			appendField(out, ShaderBufField{Name: fullName, Type: f.Type, Count: 1, Offset: baseOffset + offset})
			offset += f.Type.Std140Size()
		}
	}

	return offset, nil
}

func appendField(out *[]ShaderBufField, f ShaderBufField) {
	if out != nil {
		*out = append(*out, f)
	}
}

func alignUp(val, boundary uint32) uint32 {

	alignmentError := val % boundary
	if alignmentError != 0 {
		val += boundary - alignmentError
	}

	return val
}
