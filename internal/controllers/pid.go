package controllers

import "github.com/san-kum/nukelab/internal/reactor"

// PID holds neutron density at a target level by trimming reactivity. The
// output is clamped so the controller can never insert more than MaxRho in
// either direction.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	MaxRho   float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		MaxRho: 0.005,
		first:  true,
	}
}

func (p *PID) clamp(u float64) float64 {
	if p.MaxRho > 0 {
		if u > p.MaxRho {
			return p.MaxRho
		}
		if u < -p.MaxRho {
			return -p.MaxRho
		}
	}
	return u
}

func (p *PID) Compute(x reactor.State, t float64) reactor.Control {
	if len(x) < 1 {
		return reactor.Control{0}
	}

	err := p.Target - x[0]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return reactor.Control{p.clamp(p.Kp * err)}
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return reactor.Control{p.clamp(u)}
	}
	return reactor.Control{p.clamp(p.Kp * err)}
}
