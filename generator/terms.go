package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Range is an inclusive bound for drawn coefficients.
type Range struct {
	Low  int64
	High int64
}

// DefaultRange is the coefficient range builders draw from.
var DefaultRange = Range{Low: -9, High: 9}

// MaxCoefficient bounds the magnitude of either end of a Range, which
// keeps High-Low+1 inside int64.
const MaxCoefficient = 1 << 31

// Validate reports whether r contains at least one non-zero integer and
// both bounds are within MaxCoefficient.
func (r Range) Validate() error {
	if r.Low < -MaxCoefficient || r.High > MaxCoefficient {
		return fmt.Errorf("coefficient range [%d, %d] exceeds ±%d", r.Low, r.High, int64(MaxCoefficient))
	}
	if r.Low > r.High {
		return fmt.Errorf("coefficient range [%d, %d] is empty", r.Low, r.High)
	}
	if r.Low == 0 && r.High == 0 {
		return fmt.Errorf("coefficient range [0, 0] has no non-zero value")
	}
	return nil
}

// Terms draws the random integers used by builders and the transformer.
// It is safe for concurrent use.
type Terms struct {
	mu    sync.Mutex
	rng   *rand.Rand
	coeff Range
}

// NewTerms returns a Terms seeded from crypto/rand, so separate processes
// never replay the same sequence.
func NewTerms(coeff Range) (*Terms, error) {
	if err := coeff.Validate(); err != nil {
		return nil, err
	}
	seed, err := newSeed()
	if err != nil {
		return nil, err
	}
	t := NewTermsFromSeed(seed)
	t.coeff = coeff
	return t, nil
}

// NewTermsFromSeed returns a deterministic Terms over DefaultRange.
func NewTermsFromSeed(seed int64) *Terms {
	return &Terms{rng: rand.New(rand.NewSource(seed)), coeff: DefaultRange}
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Coefficient draws uniformly from [low, high], re-drawing until the value
// is non-zero. It panics if the range holds no non-zero value.
func (t *Terms) Coefficient(low, high int64) int64 {
	if err := (Range{Low: low, High: high}).Validate(); err != nil {
		panic("generator: " + err.Error())
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		if n := low + t.rng.Int63n(high-low+1); n != 0 {
			return n
		}
	}
}

// Literal draws a coefficient from the configured range.
func (t *Terms) Literal() int64 { return t.Coefficient(t.coeff.Low, t.coeff.High) }

// IntRange draws uniformly from [low, high], zero included.
func (t *Terms) IntRange(low, high int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return low + t.rng.Intn(high-low+1)
}

// Chance reports true with probability p.
func (t *Terms) Chance(p float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rng.Float64() < p
}

// Pick returns a uniform index in [0, n).
func (t *Terms) Pick(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rng.Intn(n)
}
