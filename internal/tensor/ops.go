package tensor

// Method sugar over the Backend interface. Each call allocates a new result
// tensor; inputs are never modified.

// Add performs element-wise addition with broadcasting.
func (t *Tensor[B]) Add(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[B]) Sub(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[B]) Mul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[B]) Div(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Div(t.raw, other.raw), t.backend)
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (t *Tensor[B]) MatMul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Reshape returns a tensor with the same data under a new shape.
func (t *Tensor[B]) Reshape(newShape ...int) *Tensor[B] {
	return New(t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Transpose permutes the tensor's dimensions. With no axes it reverses them.
func (t *Tensor[B]) Transpose(axes ...int) *Tensor[B] {
	return New(t.backend.Transpose(t.raw, axes...), t.backend)
}

// T is a shortcut for 2D transpose. Panics for non-2D tensors.
func (t *Tensor[B]) T() *Tensor[B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// AddScalar adds a scalar constant to every element.
func (t *Tensor[B]) AddScalar(c float32) *Tensor[B] {
	return New(t.backend.AddScalar(t.raw, c), t.backend)
}

// MulScalar multiplies every element by a scalar constant.
func (t *Tensor[B]) MulScalar(c float32) *Tensor[B] {
	return New(t.backend.MulScalar(t.raw, c), t.backend)
}

// DivScalar divides every element by a scalar constant.
func (t *Tensor[B]) DivScalar(c float32) *Tensor[B] {
	return New(t.backend.DivScalar(t.raw, c), t.backend)
}

// Log computes the element-wise natural logarithm.
func (t *Tensor[B]) Log() *Tensor[B] {
	return New(t.backend.Log(t.raw), t.backend)
}

// Abs computes the element-wise absolute value.
func (t *Tensor[B]) Abs() *Tensor[B] {
	return New(t.backend.Abs(t.raw), t.backend)
}

// Mean reduces the tensor to its mean over all elements, shape {1}.
func (t *Tensor[B]) Mean() *Tensor[B] {
	return New(t.backend.Mean(t.raw), t.backend)
}

// Chunk splits the tensor into n equal parts along dim.
func (t *Tensor[B]) Chunk(n, dim int) []*Tensor[B] {
	raws := t.backend.Chunk(t.raw, n, dim)
	out := make([]*Tensor[B], len(raws))
	for i, r := range raws {
		out[i] = New(r, t.backend)
	}
	return out
}
