package buffers

// VertexBufLayout describes how one interleaved vertex is laid out in a vertex buffer
type VertexBufLayout struct {
	Stride   int32
	elements []Element
}

func (vl *VertexBufLayout) Elements() []Element {
	e := make([]Element, len(vl.elements))
	copy(e, vl.elements)
	return e
}

func (vl *VertexBufLayout) Len() int {
	return len(vl.elements)
}

// AddElement appends an element after the existing ones and grows the stride
func (vl *VertexBufLayout) AddElement(e Element) {
	e.Offset = int(vl.Stride)
	vl.Stride += e.Size()
	vl.elements = append(vl.elements, e)
}

// Element returns the element with the given attribute name
func (vl *VertexBufLayout) Element(name string) (Element, bool) {

	for i := 0; i < len(vl.elements); i++ {
		if vl.elements[i].Name == name {
			return vl.elements[i], true
		}
	}

	return Element{}, false
}

func (vl *VertexBufLayout) Reset() {
	vl.Stride = 0
	vl.elements = vl.elements[:0]
}

func NewVertexBufLayout(elements ...Element) VertexBufLayout {

	vl := VertexBufLayout{
		elements: make([]Element, 0, len(elements)),
	}

	for i := 0; i < len(elements); i++ {
		vl.AddElement(elements[i])
	}

	return vl
}
