package calculator

import (
	"runtime"

	"gopkg.in/ini.v1"
)

type Config struct {
	Workers  int // goroutines evaluating q chunks
	MinChunk int // smallest number of q points handed to one task

	CacheCapacity int    // memoized curves, 0 disables the memo
	CacheSnapshot string // msgpack file the memo is loaded from and saved to
}

func DefaultConfig() Config {
	return Config{
		Workers:       runtime.NumCPU(),
		MinChunk:      64,
		CacheCapacity: 128,
	}
}

// LoadConfig reads the [calculator] and [cache] sections. Missing keys keep
// their defaults.
func LoadConfig(file *ini.File) Config {
	def := DefaultConfig()
	calc := file.Section("calculator")
	memo := file.Section("cache")
	cfg := Config{
		Workers:       calc.Key("Workers").MustInt(def.Workers),
		MinChunk:      calc.Key("MinChunk").MustInt(def.MinChunk),
		CacheCapacity: memo.Key("Capacity").MustInt(def.CacheCapacity),
		CacheSnapshot: memo.Key("Snapshot").MustString(def.CacheSnapshot),
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MinChunk < 1 {
		cfg.MinChunk = 1
	}
	return cfg
}
