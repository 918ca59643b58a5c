package gbn

// Config carries the tunable parameters governing one entity's Go-Back-N
// behaviour: a value type with defaults filled in by SanitiseConfig
// rather than threaded through every constructor argument.
type Config struct {
	// Name labels this entity in logs and metrics (e.g. "a", "b"). Purely
	// cosmetic: the empty string is a valid, if uninformative, label.
	Name string
	// Window is the maximum number of unacknowledged packets that may be
	// in flight at once. Zero selects the default of 8.
	Window uint16
	// TimerIncrement is the retransmission timer duration, in the units
	// understood by the Timer collaborator. Zero selects the default of
	// 17.
	TimerIncrement uint32
	// BufferCapacity is the minimum number of outstanding packets the
	// send buffer must hold. Zero selects the default of 51.
	BufferCapacity int
}

// DefaultConfig returns the configuration specified for this protocol:
// window 8, timer increment 17, buffer capacity 51.
func DefaultConfig() Config {
	return Config{
		Window:         defaultWindow,
		TimerIncrement: defaultTimerIncrement,
		BufferCapacity: bufferCapacity,
	}
}

// SanitiseConfig fills in zero-valued fields of cfg with the protocol
// defaults.
func SanitiseConfig(cfg *Config) {
	def := DefaultConfig()
	if cfg.Window == 0 {
		cfg.Window = def.Window
	}
	if cfg.TimerIncrement == 0 {
		cfg.TimerIncrement = def.TimerIncrement
	}
	if cfg.BufferCapacity == 0 {
		cfg.BufferCapacity = def.BufferCapacity
	}
}
