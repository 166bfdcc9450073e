package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/domain"
)

// FallbackPhrase is returned when a percentage falls outside every bucket.
const FallbackPhrase = "Что-то пошло не так..."

// PhraseBucket maps the half-open range [Min, Max) to candidate phrases.
type PhraseBucket struct {
	Min     int
	Max     int
	Phrases []string
}

// Contains reports whether p lies in the bucket.
func (b PhraseBucket) Contains(p int) bool {
	return p >= b.Min && p < b.Max
}

// PhraseBuckets are checked in order. They cover [0, 100] without gaps or overlaps.
var PhraseBuckets = []PhraseBucket{
	{Min: 0, Max: 20, Phrases: []string{
		"Увы, кажется, это не ваша история...",
		"Звезды сейчас не на вашей стороне.",
		"Возможно, стоит поискать в другом месте.",
	}},
	{Min: 20, Max: 40, Phrases: []string{
		"Шансы невелики, но чудеса случаются!",
		"Пока что не видно искры, но кто знает...",
		"Начните с дружбы, а там посмотрим.",
	}},
	{Min: 40, Max: 60, Phrases: []string{
		"Есть небольшая искра, но нужно больше огня.",
		"Попробуйте узнать друг друга получше.",
		"Не все потеряно, но работа предстоит большая.",
	}},
	{Min: 60, Max: 80, Phrases: []string{
		"Вы отлично ладите друг с другом!",
		"Между вами есть сильная связь.",
		"Любовь витает в воздухе!",
	}},
	{Min: 80, Max: 101, Phrases: []string{
		"Вы — две половинки одного целого!",
		"Ваша любовь — это нечто особенное.",
		"Берегите друг друга!",
	}},
}

// Analyzer draws compatibility percentages and picks verdict phrases.
type Analyzer struct {
	mu      sync.Mutex
	rng     *rand.Rand
	buckets []PhraseBucket
}

// NewAnalyzer creates an Analyzer seeded from the clock.
func NewAnalyzer() *Analyzer {
	seed := uint64(time.Now().UnixNano())
	return NewAnalyzerWithSource(rand.NewPCG(seed, seed>>1|1))
}

// NewAnalyzerWithSource creates an Analyzer drawing from src.
func NewAnalyzerWithSource(src rand.Source) *Analyzer {
	return &Analyzer{
		rng:     rand.New(src),
		buckets: PhraseBuckets,
	}
}

// DrawPercentage returns a uniformly distributed integer in [1, 100].
func (a *Analyzer) DrawPercentage() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return config.MinPercentage + a.rng.IntN(config.MaxPercentage-config.MinPercentage+1)
}

// PhraseFor returns a random phrase from the bucket containing p.
func (a *Analyzer) PhraseFor(p int) string {
	for _, b := range a.buckets {
		if !b.Contains(p) || len(b.Phrases) == 0 {
			continue
		}
		a.mu.Lock()
		i := a.rng.IntN(len(b.Phrases))
		a.mu.Unlock()
		return b.Phrases[i]
	}
	return FallbackPhrase
}

// Draw produces a full compatibility result.
func (a *Analyzer) Draw() domain.Compatibility {
	p := a.DrawPercentage()
	return domain.Compatibility{Percentage: p, Phrase: a.PhraseFor(p)}
}
