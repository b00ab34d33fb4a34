package tensor

import "fmt"

// RawTensor is the low-level tensor representation: a flat float32 buffer
// plus shape and row-major strides. The model works exclusively in float32,
// so there is no runtime dtype tag.
//
// Pointer identity matters: the autodiff tape keys gradients by *RawTensor,
// so backends allocate a fresh RawTensor for every operation result and
// never modify inputs in place.
type RawTensor struct {
	data   []float32
	shape  Shape
	stride []int
}

// NewRaw creates a zero-initialized RawTensor with the given shape.
func NewRaw(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// MustNewRaw is NewRaw for shapes already known to be valid. Panics otherwise.
func MustNewRaw(shape Shape) *RawTensor {
	r, err := NewRaw(shape)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the flat element buffer. Mutating it mutates the tensor.
func (r *RawTensor) Data() []float32 {
	return r.data
}

// View returns a new RawTensor sharing this tensor's buffer under a new
// shape. The element count must match. Used for reshape.
func (r *RawTensor) View(shape Shape) *RawTensor {
	if shape.NumElements() != r.NumElements() {
		panic(fmt.Sprintf("view: incompatible shapes %v -> %v", r.shape, shape))
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}
}

// Clone creates a deep copy of the RawTensor.
func (r *RawTensor) Clone() *RawTensor {
	c := MustNewRaw(r.shape)
	copy(c.data, r.data)
	return c
}

// String returns a short human-readable description.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor%v", r.shape)
}
