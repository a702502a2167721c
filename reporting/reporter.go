// Package reporting turns read-only snapshots of queues and event lists into
// reports and metrics.
package reporting

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/eventkernel/sim/queueing"
	"github.com/sarchlab/eventkernel/sim/timing"
)

// QueueSource is the read-only view of a process queue.
type QueueSource interface {
	Name() string
	Len() int
	Capacity() int
	Refused() int
	Observations() int
	MaxLength() int
	Discipline() queueing.Discipline
}

// ListSource is the read-only view of an event list.
type ListSource interface {
	Name() string
	Len() int
}

// Clock tells the current simulated time.
type Clock interface {
	CurrentTime() timing.TimeInstant
}

// Kinds of snapshots.
const (
	KindQueue = "queue"
	KindList  = "list"
)

// Snapshot is the state of one reported structure at one moment.
type Snapshot struct {
	Name         string
	Kind         string
	Length       int
	MaxLength    int
	Capacity     int
	Refused      int
	Observations int
	Discipline   string
}

// Reporter collects snapshots. It also serves them as Prometheus metrics.
type Reporter struct {
	queues []QueueSource
	lists  []ListSource

	clock     Clock
	formatter timing.Formatter

	lengthDesc       *prometheus.Desc
	capacityDesc     *prometheus.Desc
	refusedDesc      *prometheus.Desc
	observationsDesc *prometheus.Desc
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	labels := []string{"name", "kind"}

	return &Reporter{
		lengthDesc: prometheus.NewDesc(
			"eventkernel_length",
			"Number of entries currently held.",
			labels, nil),
		capacityDesc: prometheus.NewDesc(
			"eventkernel_capacity",
			"Maximum number of entries, 0 if unlimited.",
			labels, nil),
		refusedDesc: prometheus.NewDesc(
			"eventkernel_refused_total",
			"Number of entries refused because the queue was full.",
			labels, nil),
		observationsDesc: prometheus.NewDesc(
			"eventkernel_observations_total",
			"Number of entries accepted since the last reset.",
			labels, nil),
	}
}

// SetClock makes reports start with the current simulated time.
func (r *Reporter) SetClock(clock Clock, formatter timing.Formatter) {
	r.clock = clock
	r.formatter = formatter
}

// AddQueue adds a queue to the report.
func (r *Reporter) AddQueue(q QueueSource) {
	r.queues = append(r.queues, q)
}

// AddList adds an event list to the report.
func (r *Reporter) AddList(l ListSource) {
	r.lists = append(r.lists, l)
}

// Snapshots reads the current state of every reported structure.
func (r *Reporter) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(r.lists)+len(r.queues))

	for _, l := range r.lists {
		snapshots = append(snapshots, Snapshot{
			Name:   l.Name(),
			Kind:   KindList,
			Length: l.Len(),
		})
	}

	for _, q := range r.queues {
		snapshots = append(snapshots, Snapshot{
			Name:         q.Name(),
			Kind:         KindQueue,
			Length:       q.Len(),
			MaxLength:    q.MaxLength(),
			Capacity:     q.Capacity(),
			Refused:      q.Refused(),
			Observations: q.Observations(),
			Discipline:   q.Discipline().String(),
		})
	}

	return snapshots
}

// WriteReport writes the snapshots as an aligned table.
func (r *Reporter) WriteReport(w io.Writer) error {
	if r.clock != nil && r.formatter != nil {
		_, err := fmt.Fprintf(w, "Time: %s\n",
			r.formatter.FormatInstant(r.clock.CurrentTime()))
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDISCIPLINE\tLENGTH\tMAX\tCAPACITY\tOBS\tREFUSED")

	for _, s := range r.Snapshots() {
		capacity := "-"
		if s.Kind == KindQueue {
			capacity = "unlimited"
			if s.Capacity > 0 {
				capacity = fmt.Sprint(s.Capacity)
			}
		}

		discipline := s.Discipline
		if discipline == "" {
			discipline = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			s.Name, s.Kind, discipline, s.Length, s.MaxLength,
			capacity, s.Observations, s.Refused)
	}

	return tw.Flush()
}

// Describe implements prometheus.Collector.
func (r *Reporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.lengthDesc
	ch <- r.capacityDesc
	ch <- r.refusedDesc
	ch <- r.observationsDesc
}

// Collect implements prometheus.Collector.
func (r *Reporter) Collect(ch chan<- prometheus.Metric) {
	for _, s := range r.Snapshots() {
		ch <- prometheus.MustNewConstMetric(r.lengthDesc,
			prometheus.GaugeValue, float64(s.Length), s.Name, s.Kind)

		if s.Kind != KindQueue {
			continue
		}

		ch <- prometheus.MustNewConstMetric(r.capacityDesc,
			prometheus.GaugeValue, float64(s.Capacity), s.Name, s.Kind)
		ch <- prometheus.MustNewConstMetric(r.refusedDesc,
			prometheus.CounterValue, float64(s.Refused), s.Name, s.Kind)
		ch <- prometheus.MustNewConstMetric(r.observationsDesc,
			prometheus.CounterValue, float64(s.Observations), s.Name, s.Kind)
	}
}
