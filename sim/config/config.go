// Package config loads the settings of a simulation run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/id"
	"github.com/sarchlab/eventkernel/sim/queueing"
	"github.com/sarchlab/eventkernel/sim/rng"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// EnvPrefix prefixes the environment variables that override the file.
const EnvPrefix = "EVENTKERNEL_"

// Config mirrors the YAML configuration file.
type Config struct {
	Epsilon       string      `yaml:"epsilon"`        // 1ms (by default)
	Seed          int64       `yaml:"seed"`           // 0 (by default)
	RandomizeTies bool        `yaml:"randomize_ties"` // false (by default)
	IDGenerator   string      `yaml:"id_generator"`   // sequential (by default)
	LogLevel      string      `yaml:"log_level"`      // info (by default)
	Queue         QueueConfig `yaml:"queue"`
	Trace         TraceConfig `yaml:"trace"`
}

// QueueConfig holds the defaults of process queues.
type QueueConfig struct {
	Discipline string `yaml:"discipline"` // fifo (by default)
	Capacity   int    `yaml:"capacity"`   // 0, unlimited (by default)
}

// TraceConfig selects where hook invocations are recorded.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // sqlite or csv
	Path    string `yaml:"path"`   // generated if empty
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Epsilon:     "1ms",
		IDGenerator: "sequential",
		LogLevel:    "info",
		Queue: QueueConfig{
			Discipline: "fifo",
		},
		Trace: TraceConfig{
			Format: "sqlite",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// variables of the given .env files and of the environment. An empty path
// means defaults only. Missing .env files are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	cfg.clamp()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("EPSILON"); ok {
		c.Epsilon = v
	}

	if v, ok := lookupEnv("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("SEED", err)
		}

		c.Seed = seed
	}

	if v, ok := lookupEnv("RANDOMIZE_TIES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("RANDOMIZE_TIES", err)
		}

		c.RandomizeTies = b
	}

	if v, ok := lookupEnv("ID_GENERATOR"); ok {
		c.IDGenerator = v
	}

	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}

	if v, ok := lookupEnv("QUEUE_DISCIPLINE"); ok {
		c.Queue.Discipline = v
	}

	if v, ok := lookupEnv("QUEUE_CAPACITY"); ok {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return envError("QUEUE_CAPACITY", err)
		}

		c.Queue.Capacity = capacity
	}

	if v, ok := lookupEnv("TRACE_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("TRACE_ENABLED", err)
		}

		c.Trace.Enabled = b
	}

	if v, ok := lookupEnv("TRACE_FORMAT"); ok {
		c.Trace.Format = v
	}

	if v, ok := lookupEnv("TRACE_PATH"); ok {
		c.Trace.Path = v
	}

	return nil
}

// sanity clamps
func (c *Config) clamp() {
	if c.Epsilon == "" {
		c.Epsilon = "1ms"
	}

	c.IDGenerator = strings.ToLower(c.IDGenerator)
	if c.IDGenerator != "parallel" {
		c.IDGenerator = "sequential"
	}

	if c.Queue.Capacity < 0 {
		c.Queue.Capacity = 0
	}

	c.Trace.Format = strings.ToLower(c.Trace.Format)
	if c.Trace.Format != "csv" {
		c.Trace.Format = "sqlite"
	}
}

// TimeModel builds the time model of the run.
func (c Config) TimeModel() (timing.TimeModel, error) {
	epsilon, err := time.ParseDuration(c.Epsilon)
	if err != nil {
		return timing.TimeModel{}, fmt.Errorf("config: epsilon: %w", err)
	}

	return timing.NewTimeModel(epsilon)
}

// RNG builds the random streams of the run.
func (c Config) RNG() *rng.PartitionedRNG {
	return rng.NewPartitionedRNG(c.Seed)
}

// NewIDGenerator builds the generator that names notes.
func (c Config) NewIDGenerator() id.IDGenerator {
	if c.IDGenerator == "parallel" {
		return id.NewParallelIDGenerator()
	}

	return id.NewSequentialIDGenerator()
}

// NewEventList builds the event list of the run. Ties are randomized with the
// event-list stream of r if the configuration asks for it.
func (c Config) NewEventList(
	name string,
	r *rng.PartitionedRNG,
) eventlist.EventList {
	if c.RandomizeTies {
		return eventlist.NewRandomizingList(name,
			r.ForSubsystem(rng.SubsystemEventList))
	}

	return eventlist.NewVectorList(name)
}

// QueueDiscipline parses the default queue discipline.
func (c Config) QueueDiscipline() (queueing.Discipline, error) {
	return queueing.ParseDiscipline(c.Queue.Discipline)
}

// QueueRand returns the random stream of the named queue.
func (c Config) QueueRand(r *rng.PartitionedRNG, name string) *rand.Rand {
	return r.ForSubsystem(rng.SubsystemQueue(name))
}

// Level parses the log level, falling back to info.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

func lookupEnv(key string) (string, bool) {
	return os.LookupEnv(EnvPrefix + key)
}

func envError(key string, err error) error {
	return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
}
