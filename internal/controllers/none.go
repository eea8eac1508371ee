package controllers

import "github.com/san-kum/nukelab/internal/reactor"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{
		dim: dim,
	}
}

func (n *None) Compute(x reactor.State, t float64) reactor.Control {
	return make(reactor.Control, n.dim)
}
