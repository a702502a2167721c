// Package rng hands out independent, reproducible random streams.
package rng

import (
	"hash/fnv"
	"math/rand"
)

const (
	// SubsystemEventList is the stream that breaks ties in randomized event
	// lists.
	SubsystemEventList = "event_list"

	// SubsystemWorkload is the stream used by workload generators.
	SubsystemWorkload = "workload"
)

// SubsystemQueue returns the subsystem name of a queue's random stream.
func SubsystemQueue(name string) string {
	return "queue_" + name
}

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// The seed of a subsystem is the master seed XOR the FNV-1a hash of the
// subsystem name, so adding a stream does not perturb the others.
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream of the named subsystem. The same name
// always returns the same *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.subsystems[name]; ok {
		return r
	}

	r := rand.New(rand.NewSource(p.seed ^ fnv1a64(name)))
	p.subsystems[name] = r

	return r
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))

	return int64(h.Sum64())
}
