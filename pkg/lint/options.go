package lint

// Defaults for the built-in rules.
const (
	DefaultAssertionFunc = "expect"
	DefaultMaxAssertions = 4
)

var (
	// DefaultSuiteFuncs are the callee names that open a suite.
	DefaultSuiteFuncs = []string{"describe"}
	// DefaultTestFuncs are the callee names that define a test.
	DefaultTestFuncs = []string{"it"}
	// DefaultIsolationProps are mock lifecycle members that belong in setup/teardown hooks.
	DefaultIsolationProps = []string{"restore", "spy", "stub"}
)

// Config configures the linter.
type Config struct {
	// SuiteFuncs are the callee names recognised as suites, including
	// their member forms (describe.skip, describe.only).
	SuiteFuncs []string

	// TestFuncs are the callee names recognised as tests (it, it.only).
	TestFuncs []string

	// AssertionFunc is the assertion entry point counted by the density rule.
	AssertionFunc string

	// IsolationProps are the member names flagged when used inside a test body.
	IsolationProps []string

	// MaxAssertions is the highest assertion count a test may have.
	// Zero or negative values use DefaultMaxAssertions.
	MaxAssertions int

	// Checks selects rules by ID. Empty means all registered rules.
	Checks []string
}

// Option is a functional option for configuring the linter.
type Option func(*Config)

// WithSuiteFuncs sets the suite callee names. Empty input is ignored.
func WithSuiteFuncs(names ...string) Option {
	return func(c *Config) {
		if len(names) > 0 {
			c.SuiteFuncs = names
		}
	}
}

// WithTestFuncs sets the test callee names. Empty input is ignored.
func WithTestFuncs(names ...string) Option {
	return func(c *Config) {
		if len(names) > 0 {
			c.TestFuncs = names
		}
	}
}

// WithAssertionFunc sets the assertion entry point name.
func WithAssertionFunc(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.AssertionFunc = name
		}
	}
}

// WithIsolationProps sets the member names flagged by the isolation rule.
func WithIsolationProps(names ...string) Option {
	return func(c *Config) {
		if len(names) > 0 {
			c.IsolationProps = names
		}
	}
}

// WithMaxAssertions sets the assertion threshold. Non-positive values are ignored.
func WithMaxAssertions(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxAssertions = n
		}
	}
}

// WithChecks selects which rules run.
func WithChecks(ids ...string) Option {
	return func(c *Config) {
		c.Checks = ids
	}
}

func applyDefaults(cfg *Config) {
	if len(cfg.SuiteFuncs) == 0 {
		cfg.SuiteFuncs = DefaultSuiteFuncs
	}
	if len(cfg.TestFuncs) == 0 {
		cfg.TestFuncs = DefaultTestFuncs
	}
	if cfg.AssertionFunc == "" {
		cfg.AssertionFunc = DefaultAssertionFunc
	}
	if len(cfg.IsolationProps) == 0 {
		cfg.IsolationProps = DefaultIsolationProps
	}
	if cfg.MaxAssertions <= 0 {
		cfg.MaxAssertions = DefaultMaxAssertions
	}
}
