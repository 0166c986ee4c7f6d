package synth

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"jsonspect/internal/config"
	"jsonspect/internal/models"
)

const (
	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	hexDigits    = "0123456789abcdef"
	digits       = "0123456789"
)

// Word pools for synthesized identifiers. Plausibility beats variety here.
var (
	localParts = []string{"alex", "sam", "jordan", "taylor", "casey", "morgan", "riley", "quinn", "avery", "jamie"}
	domains    = []string{"example", "acme", "globex", "initech", "umbrella", "hooli", "stark", "wayne"}
	tlds       = []string{"com", "net", "org", "io", "dev"}
	pathWords  = []string{"home", "about", "products", "docs", "blog", "api", "users", "search", "pricing", "contact"}
)

// Synthesizer produces one random but plausible value per semantic tag.
// It is a pure function of (tag, example) plus its own random source; the
// source is injected so tests can fix a seed.
type Synthesizer struct {
	rng *rand.Rand
	cfg config.MockConfig
	now func() time.Time
}

// New creates a Synthesizer backed by rng
func New(rng *rand.Rand, cfg config.MockConfig) *Synthesizer {
	return &Synthesizer{rng: rng, cfg: cfg, now: time.Now}
}

// Rand exposes the underlying random source so callers sharing a seed
// (the structure walker picks array lengths) stay on one stream.
func (s *Synthesizer) Rand() *rand.Rand {
	return s.rng
}

// Value synthesizes one scalar for tag, guided by the example value when
// one exists. It never fails: unknown tags behave like string.
func (s *Synthesizer) Value(tag models.Tag, example models.Value) models.Value {
	switch tag {
	case models.TagNull:
		return nil
	case models.TagBoolean:
		return s.rng.Intn(2) == 0
	case models.TagInteger:
		return s.integer(example)
	case models.TagNumber:
		return s.number(example)
	case models.TagDate:
		return s.timestamp().Format("2006-01-02")
	case models.TagDatetime:
		return s.timestamp().UTC().Format(time.RFC3339)
	case models.TagEmail:
		local := localParts[s.rng.Intn(len(localParts))] + strconv.Itoa(s.rng.Intn(100))
		return local + "@" + domains[s.rng.Intn(len(domains))] + "." + tlds[s.rng.Intn(len(tlds))]
	case models.TagPhone:
		return s.phone()
	case models.TagURL:
		return "https://" + domains[s.rng.Intn(len(domains))] + "." + tlds[s.rng.Intn(len(tlds))] +
			"/" + pathWords[s.rng.Intn(len(pathWords))]
	case models.TagObjectID:
		return s.randomString(hexDigits, 24)
	default:
		return s.str(example)
	}
}

// str produces a random alphanumeric string bounded by the example's
// length +/-50%, minimum length 1.
func (s *Synthesizer) str(example models.Value) string {
	base := s.cfg.DefaultStringLen
	if es, ok := example.(string); ok && len(es) > 0 {
		base = len(es)
	}
	lo := base - base/2
	if lo < 1 {
		lo = 1
	}
	hi := base + base/2
	if hi < lo {
		hi = lo
	}
	n := lo + s.rng.Intn(hi-lo+1)
	return s.randomString(alphanumeric, n)
}

func (s *Synthesizer) integer(example models.Value) int64 {
	if ex, ok := exampleInt(example); ok && ex >= 0 && ex <= s.cfg.AgeLikeMax {
		return s.rng.Int63n(s.cfg.AgeLikeBound + 1)
	}
	return s.rng.Int63n(s.cfg.IntMax + 1)
}

// number keeps the example's sign and order of magnitude.
func (s *Synthesizer) number(example models.Value) float64 {
	ex, ok := exampleFloat(example)
	if !ok || ex == 0 {
		return s.rng.Float64() * 100
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(math.Abs(ex))))
	v := (1 + 9*s.rng.Float64()) * magnitude
	if ex < 0 {
		v = -v
	}
	// Two decimals keeps output readable without changing the magnitude.
	return math.Round(v*100) / 100
}

func (s *Synthesizer) phone() string {
	// Generic international shape: plus sign, non-zero lead, 10-13 digits.
	n := 9 + s.rng.Intn(4)
	var b strings.Builder
	b.WriteByte('+')
	b.WriteByte(digits[1+s.rng.Intn(9)])
	for i := 0; i < n; i++ {
		b.WriteByte(digits[s.rng.Intn(10)])
	}
	return b.String()
}

func (s *Synthesizer) timestamp() time.Time {
	spread := int64(s.cfg.YearSpread) * 365 * 24 * 3600
	offset := s.rng.Int63n(2*spread+1) - spread
	return s.now().Add(time.Duration(offset) * time.Second)
}

func (s *Synthesizer) randomString(charset string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[s.rng.Intn(len(charset))]
	}
	return string(b)
}

func exampleInt(v models.Value) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	}
	return 0, false
}

func exampleFloat(v models.Value) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
