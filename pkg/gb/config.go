package gb

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Default configuration values.
const (
	// DefaultAutoReduceFreq is the number of accepted basis extensions
	// between in-loop tail interreductions.
	DefaultAutoReduceFreq = 5
)

// Config carries the knobs of a single completion run. A Config is
// plain data passed into Run; nothing here is process-global, so
// concurrent runs with different configurations are fine.
type Config struct {
	// AutoReduceFreq interreduces the basis tails after every
	// AutoReduceFreq accepted extensions. Zero disables in-loop
	// interreduction.
	AutoReduceFreq int `json:"auto_reduce_freq"`

	// Debug enables per-pair trace logging. It must never change the
	// outcome of a run.
	Debug bool `json:"debug"`

	// Logger receives run logs. Defaults to log.Default.
	Logger *log.Logger `json:"-"`
}

// DefaultConfig returns the conventional settings.
func DefaultConfig() Config {
	return Config{AutoReduceFreq: DefaultAutoReduceFreq}
}

func (c Config) validate() error {
	if c.AutoReduceFreq < 0 {
		return fmt.Errorf("gb: auto reduce frequency must be >= 0, got %d", c.AutoReduceFreq)
	}
	return nil
}
