package generate

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampler owns the stage's only pseudo-random source. Every draw goes
// through it so a fixed seed reproduces the dataset byte for byte.
type sampler struct {
	rnd      *rand.Rand
	daySkew  distuv.Beta
	delivery distuv.Normal
}

func newSampler(seed uint64) *sampler {
	rnd := rand.New(rand.NewSource(seed))
	return &sampler{
		rnd: rnd,
		// Right-skewed day offsets: recent dates are denser.
		daySkew:  distuv.Beta{Alpha: 2, Beta: 5, Src: rnd},
		delivery: distuv.Normal{Mu: 0, Sigma: deliveryStdDevMinutes, Src: rnd},
	}
}

const deliveryStdDevMinutes = 5

func (s *sampler) uniform(min, max float64) float64 {
	return min + s.rnd.Float64()*(max-min)
}

func (s *sampler) intn(n int) int {
	return s.rnd.Intn(n)
}

// weightedIndex draws an index proportionally to the given weights. The
// weights need not sum to 1; the draw is scaled by their total mass.
func (s *sampler) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := s.rnd.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

func (s *sampler) dayOffset(rangeDays int) int {
	return int(s.daySkew.Rand() * float64(rangeDays))
}

// deliveryMinutes draws round(Normal(mean, 5)) clamped to [10, 60].
func (s *sampler) deliveryMinutes(mean float64) int {
	draw := mean + s.delivery.Rand()
	minutes := int(math.Round(draw))
	if minutes < 10 {
		return 10
	}
	if minutes > 60 {
		return 60
	}
	return minutes
}

// sampleDistinct picks k distinct indices in [0, n). Sampling is without
// replacement within one call only; separate calls may repeat.
func (s *sampler) sampleDistinct(n, k int) []int {
	if k > n {
		k = n
	}
	picked := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for len(out) < k {
		idx := s.rnd.Intn(n)
		if _, ok := picked[idx]; ok {
			continue
		}
		picked[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}
