package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return New(MustNewRaw(shape), b)
}

// Full creates a tensor filled with a specific value.
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1) using the package
// level math/rand source. math/rand (not crypto/rand) is intentional:
// statistical sampling, reproducible when seeded.
func Randn[B Backend](shape Shape, b B) *Tensor[B] {
	t := Zeros(shape, b)
	fillNormal(t.Data(), rand.Float64)
	return t
}

// RandnFrom is Randn with an explicit random source, so callers that need
// reproducible draws can own their generator.
func RandnFrom[B Backend](rng *rand.Rand, shape Shape, b B) *Tensor[B] {
	t := Zeros(shape, b)
	fillNormal(t.Data(), rng.Float64)
	return t
}

// fillNormal fills data with standard normal noise via the Box-Muller
// transform, consuming two uniforms per pair of outputs.
func fillNormal(data []float32, uniform func() float64) {
	for i := 0; i < len(data); i += 2 {
		u1 := uniform()
		for u1 == 0 { // log(0) guard
			u1 = uniform()
		}
		u2 := uniform()
		r := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = float32(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = float32(r * math.Sin(2.0*math.Pi*u2))
		}
	}
}
