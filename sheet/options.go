package sheet

// Option configures a Sheet.
type Option interface {
	option(config) config
}

type (
	cacheopt struct {
		n int
	}
	sizeopt struct {
		rows, cols int
	}
	logopt struct {
		log Logger
	}
)

// config holds the settings applied by Options.
type config struct {
	// cache is the number of parsed formulas to keep. Zero disables caching.
	cache int
	// rows and cols bound the sheet. Zero means unbounded.
	rows, cols int
	log        Logger
}

// DefaultCacheSize is the number of parsed formulas a Sheet keeps by default.
const DefaultCacheSize = 256

// FormulaCache sets the number of parsed formulas to keep, keyed by their
// source text, so that setting the same text in many cells parses it once.
// n <= 0 disables the cache.
func FormulaCache(n int) Option {
	if n < 0 {
		n = 0
	}
	return &cacheopt{n}
}

func (o *cacheopt) option(c config) config {
	c.cache = o.n
	return c
}

// Size bounds the sheet to rows rows and cols columns, starting from A1.
// Accessing a cell outside the bounds is a *RangeError. A bound <= 0 leaves
// that dimension unlimited.
func Size(rows, cols int) Option {
	return &sizeopt{rows: max(rows, 0), cols: max(cols, 0)}
}

func (o *sizeopt) option(c config) config {
	c.rows, c.cols = o.rows, o.cols
	return c
}

// Logger receives debug messages about recalculation. *logger.Logger from
// github.com/jcgregorio/logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Log sets the logger for recalculation messages. The default discards them.
func Log(l Logger) Option {
	return &logopt{l}
}

func (o *logopt) option(c config) config {
	c.log = o.log
	return c
}

type nolog struct{}

func (nolog) Debugf(string, ...interface{}) {}

func newConfig(opts []Option) config {
	c := config{cache: DefaultCacheSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	if c.log == nil {
		c.log = nolog{}
	}
	return c
}
