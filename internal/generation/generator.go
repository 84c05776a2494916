package generation

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"sync"

	"github.com/phrazzld/cards-api/internal/domain"
)

// CardNumberGenerator produces candidate card numbers. Implementations return
// a numeral of exactly domain.CardNumberLength digits; uniqueness is checked by
// the caller.
type CardNumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// cardNumberSpan is the count of 12-digit numbers starting at domain.CardNumberLowerBound.
var cardNumberSpan = big.NewInt(9 * domain.CardNumberLowerBound)

// RandomGenerator draws card numbers uniformly from [100000000000, 999999999999].
type RandomGenerator struct {
	source io.Reader
}

// NewRandomGenerator returns a generator backed by crypto/rand.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

// NewRandomGeneratorFromSource returns a generator reading entropy from source.
func NewRandomGeneratorFromSource(source io.Reader) *RandomGenerator {
	return &RandomGenerator{source: source}
}

var _ CardNumberGenerator = (*RandomGenerator)(nil)

// Generate implements CardNumberGenerator.
func (g *RandomGenerator) Generate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	offset, err := rand.Int(g.source, cardNumberSpan)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return strconv.FormatInt(domain.CardNumberLowerBound+offset.Int64(), 10), nil
}

// SequenceGenerator hands out a fixed list of card numbers in order.
// It is useful wherever deterministic numbers are needed, such as seeding and tests.
type SequenceGenerator struct {
	mu      sync.Mutex
	numbers []string
	next    int
}

// NewSequenceGenerator returns a generator yielding numbers in order.
func NewSequenceGenerator(numbers ...string) *SequenceGenerator {
	return &SequenceGenerator{numbers: numbers}
}

var _ CardNumberGenerator = (*SequenceGenerator)(nil)

// Generate implements CardNumberGenerator.
func (g *SequenceGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next >= len(g.numbers) {
		return "", ErrSequenceExhausted
	}
	n := g.numbers[g.next]
	g.next++
	return n, nil
}
