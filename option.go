package tableau

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultTolerance is the epsilon used for every sign test of the pivot engine.
const DefaultTolerance = 1e-9

// Config holds the solver settings. The zero MaxIterations means no limit.
type Config struct {
	Tolerance       float64 `mapstructure:"tolerance"        validate:"gt=0,lt=1"`
	MaxIterations   int     `mapstructure:"max_iterations"   validate:"gte=0"`
	StrictVariables bool    `mapstructure:"strict_variables"`

	Logger Logger `mapstructure:"-" validate:"required"`
}

// DefaultConfig returns the settings used when no Option is given.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		Logger:    noopLogger{},
	}
}

// Option changes one setting of a Config.
type Option func(*Config) error

// WithTolerance sets the epsilon for negativity, positivity and ratio ties.
func WithTolerance(tol float64) Option {
	return func(c *Config) error {
		c.Tolerance = tol
		return nil
	}
}

// WithMaxIterations caps the number of pivots. Run fails with
// ErrIterationLimit once the cap is hit without reaching optimality.
func WithMaxIterations(n int) Option {
	return func(c *Config) error {
		c.MaxIterations = n
		return nil
	}
}

// WithStrictVariables rejects constraints that name a variable missing from
// the objective instead of adding it with a zero cost.
func WithStrictVariables() Option {
	return func(c *Config) error {
		c.StrictVariables = true
		return nil
	}
}

// WithLogger sends the solve trace to logger. A nil logger is rejected.
func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("lp: nil logger")
		}
		c.Logger = logger
		return nil
	}
}

// WithConfig replaces all settings at once, keeping the current logger when
// cfg has none.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		if cfg.Logger == nil {
			cfg.Logger = c.Logger
		}
		*c = cfg
		return nil
	}
}

var validate = validator.New()

func newConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "lp: invalid config")
	}
	return cfg, nil
}

// LoadConfig reads solver settings from a file (any format viper knows) and
// from SIMPLEX_* environment variables, which take precedence. An empty path
// reads the environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("tolerance", DefaultTolerance)
	v.SetDefault("max_iterations", 0)
	v.SetDefault("strict_variables", false)
	v.SetEnvPrefix("simplex")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "lp: read config %s", path)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "lp: decode config")
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "lp: invalid config")
	}
	return cfg, nil
}
