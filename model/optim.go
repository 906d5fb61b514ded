// SPDX-License-Identifier: MIT
// Package model implements first-order optimizers.

package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Optimizer updates parameters from their gradients.
type Optimizer interface {
	Step(params []*Parameter)
	ZeroGrad(params []*Parameter)
	LR() float64
	SetLR(lr float64)
}

// SGD is stochastic gradient descent with optional momentum.
type SGD struct {
	lr       float64
	momentum float64
	velocity map[*Parameter][]float64
}

// NewSGD returns SGD with learning rate lr and momentum in [0,1).
func NewSGD(lr, momentum float64) *SGD {
	return &SGD{lr: lr, momentum: momentum, velocity: make(map[*Parameter][]float64)}
}

func (o *SGD) Step(params []*Parameter) {
	for _, p := range params {
		if o.momentum == 0 {
			floats.AddScaled(p.Value, -o.lr, p.Grad)
			continue
		}
		v, ok := o.velocity[p]
		if !ok {
			v = make([]float64, len(p.Value))
			o.velocity[p] = v
		}
		floats.Scale(o.momentum, v)
		floats.Add(v, p.Grad)
		floats.AddScaled(p.Value, -o.lr, v)
	}
}

func (o *SGD) ZeroGrad(params []*Parameter) { ZeroGrad(params) }
func (o *SGD) LR() float64                  { return o.lr }
func (o *SGD) SetLR(lr float64)             { o.lr = lr }

// Adam is the Adam optimizer with bias correction.
type Adam struct {
	lr, beta1, beta2, eps float64

	t int
	m map[*Parameter][]float64
	v map[*Parameter][]float64
}

// NewAdam returns Adam with the usual β₁=0.9, β₂=0.999, ε=1e-8.
func NewAdam(lr float64) *Adam {
	return &Adam{
		lr: lr, beta1: 0.9, beta2: 0.999, eps: 1e-8,
		m: make(map[*Parameter][]float64),
		v: make(map[*Parameter][]float64),
	}
}

func (o *Adam) Step(params []*Parameter) {
	o.t++
	c1 := 1 - math.Pow(o.beta1, float64(o.t))
	c2 := 1 - math.Pow(o.beta2, float64(o.t))
	for _, p := range params {
		m, ok := o.m[p]
		if !ok {
			m = make([]float64, len(p.Value))
			o.m[p] = m
			o.v[p] = make([]float64, len(p.Value))
		}
		v := o.v[p]
		for i, g := range p.Grad {
			m[i] = o.beta1*m[i] + (1-o.beta1)*g
			v[i] = o.beta2*v[i] + (1-o.beta2)*g*g
			p.Value[i] -= o.lr * (m[i] / c1) / (math.Sqrt(v[i]/c2) + o.eps)
		}
	}
}

func (o *Adam) ZeroGrad(params []*Parameter) { ZeroGrad(params) }
func (o *Adam) LR() float64                  { return o.lr }
func (o *Adam) SetLR(lr float64)             { o.lr = lr }

// OptimizerByName resolves "adam" or "sgd".
func OptimizerByName(name string, lr float64) (Optimizer, error) {
	switch name {
	case "adam":
		return NewAdam(lr), nil
	case "sgd":
		return NewSGD(lr, 0.9), nil
	default:
		return nil, fmt.Errorf("model: optimizer %q: %w", name, ErrUnknown)
	}
}
