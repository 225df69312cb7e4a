package network

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/synaptiq/neuroloop/internal/layer"
)

// ProjnSpec holds tunable projection parameters.
type ProjnSpec struct {
	// Scale multiplies the projection's contribution to the receiving
	// layer's raw input. Default: 1.0.
	Scale float64

	// InitWeight is the initial value of every connection weight.
	// Default: 0.5.
	InitWeight float64
}

// DefaultProjnSpec returns the default projection parameters.
func DefaultProjnSpec() ProjnSpec {
	return ProjnSpec{Scale: 1.0, InitWeight: 0.5}
}

// Projn is a full connection from every unit of the sending layer to every
// unit of the receiving layer. Weights live in a dense recv-by-send matrix.
type Projn struct {
	pre     *layer.Layer
	post    *layer.Layer
	spec    ProjnSpec
	weights *mat.Dense
}

func newProjn(pre, post *layer.Layer, spec ProjnSpec) *Projn {
	rows, cols := post.Size(), pre.Size()
	w := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			w.Set(r, c, spec.InitWeight)
		}
	}
	return &Projn{pre: pre, post: post, spec: spec, weights: w}
}

// Pre returns the sending layer.
func (p *Projn) Pre() *layer.Layer { return p.pre }

// Post returns the receiving layer.
func (p *Projn) Post() *layer.Layer { return p.post }

// Weights returns the recv-by-send weight matrix.
func (p *Projn) Weights() *mat.Dense { return p.weights }

// SetWeight sets the weight from sending unit send to receiving unit recv.
func (p *Projn) SetWeight(recv, send int, w float64) error {
	rows, cols := p.weights.Dims()
	if recv < 0 || recv >= rows || send < 0 || send >= cols {
		return fmt.Errorf("projn %s->%s: weight index (%d, %d) out of %dx%d",
			p.pre.Name(), p.post.Name(), recv, send, rows, cols)
	}
	p.weights.Set(recv, send, w)
	return nil
}

// Flow returns this projection's contribution to the receiving layer's raw
// input: the weighted sum of sending activations, normalized by the sending
// layer size and scaled by the spec.
func (p *Projn) Flow() []float64 {
	acts := mat.NewVecDense(p.pre.Size(), p.pre.Acts())
	var out mat.VecDense
	out.MulVec(p.weights, acts)

	norm := p.spec.Scale / float64(p.pre.Size())
	raw := make([]float64, p.post.Size())
	for i := range raw {
		raw[i] = norm * out.AtVec(i)
	}
	return raw
}
