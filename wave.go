package canopy

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// WaveKind selects the waveform an animator samples.
type WaveKind uint8

const (
	WaveSine     WaveKind = iota // offset + amplitude*sin(2πp)
	WaveSquare                   // offset ± amplitude, switching every half period
	WaveSaw                      // ramps -1..1 once per period, then jumps back
	WaveTriangle                 // ramps -1..1 over the first half period, back over the second
	WaveLinear                   // offset + amplitude*p, not periodic
	WaveRandom                   // uniform in [offset-amplitude, offset+amplitude], held per period
)

var waveNames = [...]string{
	WaveSine:     "sine",
	WaveSquare:   "square",
	WaveSaw:      "saw",
	WaveTriangle: "triangle",
	WaveLinear:   "linear",
	WaveRandom:   "random",
}

func (k WaveKind) String() string {
	if int(k) < len(waveNames) {
		return waveNames[k]
	}
	return fmt.Sprintf("WaveKind(%d)", uint8(k))
}

// ParseWaveKind maps a waveform name to its kind. Matching is case-insensitive.
func ParseWaveKind(name string) (WaveKind, error) {
	for k, s := range waveNames {
		if strings.EqualFold(s, name) {
			return WaveKind(k), nil
		}
	}
	return 0, fmt.Errorf("canopy: unknown wave kind %q", name)
}

// frac returns the fractional part of p in [0, 1), also for negative p.
func frac(p float64) float64 {
	return p - math.Floor(p)
}

// unitWave returns the normalized waveform value for phase p. Random and
// Linear are handled by the caller.
func unitWave(kind WaveKind, p float64) float64 {
	switch kind {
	case WaveSine:
		return math.Sin(2 * math.Pi * p)
	case WaveSquare:
		// sign(sin(2πp)) computed from the fractional phase so that exact
		// period and half-period boundaries give 0.
		f := frac(p)
		switch {
		case f == 0 || f == 0.5:
			return 0
		case f < 0.5:
			return 1
		default:
			return -1
		}
	case WaveSaw:
		return 2*frac(p) - 1
	case WaveTriangle:
		f := frac(p)
		if f < 0.5 {
			return -1 + 4*f
		}
		return 3 - 4*f
	case WaveLinear:
		return p
	}
	return 0
}

// Sample evaluates a waveform at phase (a count of elapsed periods). It is a
// pure function except for WaveRandom, which draws a fresh value on every
// call; use a RandomHold to keep the value constant within a period.
func Sample(kind WaveKind, phase, amplitude, offset float64) float64 {
	if amplitude == 0 {
		return offset
	}
	if kind == WaveRandom {
		return offset + amplitude*(2*rand.Float64()-1)
	}
	return offset + amplitude*unitWave(kind, phase)
}

// RandomHold produces WaveRandom samples that are resampled only when the
// phase crosses into a new integer period.
type RandomHold struct {
	rng    *rand.Rand
	period float64
	value  float64
	valid  bool
}

// NewRandomHold creates a hold with its own seeded generator. A zero seed
// uses a random one.
func NewRandomHold(seed uint64) *RandomHold {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomHold{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample returns the held value for phase's period, drawing a new one in
// [offset-amplitude, offset+amplitude] on a period change.
func (h *RandomHold) Sample(phase, amplitude, offset float64) float64 {
	if amplitude == 0 {
		return offset
	}
	period := math.Floor(phase)
	if !h.valid || period != h.period {
		h.period = period
		h.value = 2*h.rng.Float64() - 1
		h.valid = true
	}
	return offset + amplitude*h.value
}

// Reset forgets the held value so the next Sample draws again.
func (h *RandomHold) Reset() {
	h.valid = false
}
