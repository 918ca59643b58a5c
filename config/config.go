package config

import (
	"fmt"

	"github.com/pelletier/go-toml"

	"github.com/katalix/go-gbn/gbn"
)

// Config holds a simulation run's configuration as parsed from TOML.
type Config struct {
	// Map is the entire configuration tree as parsed from TOML. Callers
	// may access it directly to handle their own tables.
	Map map[string]interface{}
	// Run is the parsed [run] table.
	Run RunConfig
}

// RunConfig carries the parameters governing one simulation run.
type RunConfig struct {
	// NSimMax is the number of application messages to generate before
	// the simulation stops admitting new traffic. Zero means no limit.
	NSimMax int
	// LossProb is the probability, in [0,1], that a packet is lost.
	LossProb float64
	// CorruptProb is the probability, in [0,1], that a packet surviving
	// loss arrives corrupted.
	CorruptProb float64
	// Lambda is the mean inter-arrival time of new application messages,
	// in simulated time units.
	Lambda float64
	// Seed initialises the run's random number generator.
	Seed int64
	// Peers holds each named peer's transport configuration, keyed by
	// name ("a", "b").
	Peers map[string]PeerConfig
}

// PeerConfig carries one peer's gbn.Config parameters.
type PeerConfig struct {
	Window         uint16
	TimerIncrement uint32
}

// GBNConfig converts a PeerConfig into the gbn.Config the transport
// entity expects.
func (p PeerConfig) GBNConfig() gbn.Config {
	return gbn.Config{
		Window:         p.Window,
		TimerIncrement: p.TimerIncrement,
	}
}

// SanitiseRunConfig fills in zero-valued fields of rc with the
// simulator's defaults, mirroring gbn.SanitiseConfig's role for
// per-entity configuration.
func SanitiseRunConfig(rc *RunConfig) {
	if rc.Lambda == 0 {
		rc.Lambda = 1.0
	}
	if rc.Seed == 0 {
		rc.Seed = 9999
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("unexpected %T value %v", v, v)
}

// go-toml's ToMap function represents integers as either int64 or
// uint64, so conversions must check both.
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("unexpected %T value %v", v, v)
}

func toUint16(v interface{}) (uint16, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xffff {
		return 0, fmt.Errorf("value %d out of range for uint16", n)
	}
	return uint16(n), nil
}

func toUint32(v interface{}) (uint32, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xffffffff {
		return 0, fmt.Errorf("value %d out of range for uint32", n)
	}
	return uint32(n), nil
}

func newPeerConfig(name string, pmap map[string]interface{}) (PeerConfig, error) {
	var pc PeerConfig
	if v, ok := pmap["window"]; ok {
		w, err := toUint16(v)
		if err != nil {
			return pc, fmt.Errorf("peer %s: window: %v", name, err)
		}
		pc.Window = w
	}
	if v, ok := pmap["timer_increment"]; ok {
		ti, err := toUint32(v)
		if err != nil {
			return pc, fmt.Errorf("peer %s: timer_increment: %v", name, err)
		}
		pc.TimerIncrement = ti
	}
	return pc, nil
}

func newRunConfig(rmap map[string]interface{}) (RunConfig, error) {
	var rc RunConfig

	if v, ok := rmap["nsimmax"]; ok {
		n, err := toInt64(v)
		if err != nil {
			return rc, fmt.Errorf("nsimmax: %v", err)
		}
		rc.NSimMax = int(n)
	}
	if v, ok := rmap["loss_prob"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return rc, fmt.Errorf("loss_prob: %v", err)
		}
		rc.LossProb = f
	}
	if v, ok := rmap["corrupt_prob"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return rc, fmt.Errorf("corrupt_prob: %v", err)
		}
		rc.CorruptProb = f
	}
	if v, ok := rmap["lambda"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return rc, fmt.Errorf("lambda: %v", err)
		}
		rc.Lambda = f
	}
	if v, ok := rmap["seed"]; ok {
		n, err := toInt64(v)
		if err != nil {
			return rc, fmt.Errorf("seed: %v", err)
		}
		rc.Seed = n
	}

	rc.Peers = map[string]PeerConfig{}
	if got, ok := rmap["peers"]; ok {
		peers, ok := got.(map[string]interface{})
		if !ok {
			return rc, fmt.Errorf("peer instances must be named, e.g. '[run.peers.a]'")
		}
		for name, got := range peers {
			pmap, ok := got.(map[string]interface{})
			if !ok {
				return rc, fmt.Errorf("peer instances must be named, e.g. '[run.peers.a]'")
			}
			pc, err := newPeerConfig(name, pmap)
			if err != nil {
				return rc, err
			}
			rc.Peers[name] = pc
		}
	}

	SanitiseRunConfig(&rc)
	return rc, nil
}

func (cfg *Config) loadRun() error {
	got, ok := cfg.Map["run"]
	if !ok {
		return fmt.Errorf("no run table present")
	}
	rmap, ok := got.(map[string]interface{})
	if !ok {
		return fmt.Errorf("run must be a table, e.g. '[run]'")
	}
	rc, err := newRunConfig(rmap)
	if err != nil {
		return fmt.Errorf("failed to parse run: %v", err)
	}
	cfg.Run = rc
	return nil
}

func newConfig(tree *toml.Tree) (*Config, error) {
	cfg := &Config{Map: tree.ToMap()}
	if err := cfg.loadRun(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from the specified file.
func LoadFile(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %v", err)
	}
	return newConfig(tree)
}

// LoadString loads configuration from the specified string.
func LoadString(content string) (*Config, error) {
	tree, err := toml.Load(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load config string: %v", err)
	}
	return newConfig(tree)
}
