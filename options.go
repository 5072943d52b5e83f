package shelf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/textshelf/shelf/internal/policy"
	"github.com/textshelf/shelf/internal/policy/fifopolicy"
	"github.com/textshelf/shelf/internal/policy/lfupolicy"
	"github.com/textshelf/shelf/internal/policy/lrupolicy"
	"github.com/textshelf/shelf/internal/policy/mrupolicy"
	"github.com/textshelf/shelf/internal/stats"
	"github.com/textshelf/shelf/internal/store"
	"github.com/textshelf/shelf/internal/store/diskstore"
)

// Eviction policy names accepted by WithPolicy.
const (
	PolicyFIFO = "fifo"
	PolicyMRU  = "mru"
	PolicyLFU  = "lfu"
	PolicyLRU  = "lru"
)

// Policies returns the supported eviction policy names, in the order the
// comparison tooling runs them.
func Policies() []string {
	return []string{PolicyFIFO, PolicyMRU, PolicyLFU, PolicyLRU}
}

// DefaultCapacity is the cache capacity used when WithCapacity is not given.
const DefaultCapacity = 10

// newPolicy constructs the eviction bookkeeping for a policy name.
// The policy set is closed: adding a policy means adding a case here.
func newPolicy(name string, capacity int) (policy.Policy, error) {
	switch name {
	case PolicyFIFO:
		return fifopolicy.New(), nil
	case PolicyMRU:
		return mrupolicy.New(), nil
	case PolicyLFU:
		return lfupolicy.New(), nil
	case PolicyLRU:
		return lrupolicy.New(capacity)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Option configures a Cache.
type Option interface {
	apply(*options)
}

// options holds the cache configuration.
type options struct {
	reader        store.Reader
	policy        string
	capacity      int
	cacheNegative bool
	stats         stats.Collector
	logger        *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		policy:   PolicyFIFO,
		capacity: DefaultCapacity,
		stats:    stats.NewNoop(),
		logger:   zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithReader sets the backing-store reader to use.
func WithReader(r store.Reader) Option {
	return optionFunc(func(o *options) {
		o.reader = r
	})
}

// WithPolicy sets the eviction policy by name.
// If not set, FIFO is used.
func WithPolicy(name string) Option {
	return optionFunc(func(o *options) {
		o.policy = name
	})
}

// WithCapacity sets the maximum number of resident documents.
// Default is 10.
func WithCapacity(n int) Option {
	return optionFunc(func(o *options) {
		o.capacity = n
	})
}

// WithNegativeCaching controls whether not-found lookups are cached.
// When enabled, a missing document occupies a cache slot like any other
// entry and repeated lookups of it are hits (still returning ErrNotFound)
// instead of slow store reads. Disabled by default.
func WithNegativeCaching(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.cacheNegative = enabled
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithDataDir configures the cache from a corpus directory.
// It reads manifest.json to pick the codec and the simulated slow-disk
// latency, and creates a disk-backed reader. This is the recommended way
// to open a generated corpus.
func WithDataDir(dir string) (Option, error) {
	st, err := diskstore.FromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}

	return optionFunc(func(o *options) {
		o.reader = st
	}), nil
}
