package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/process"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/eventkernel/reporting"
	"github.com/sarchlab/eventkernel/sim/config"
	"github.com/sarchlab/eventkernel/sim/eventlist"
	"github.com/sarchlab/eventkernel/sim/hooking"
	"github.com/sarchlab/eventkernel/sim/queueing"
	"github.com/sarchlab/eventkernel/sim/rng"
	"github.com/sarchlab/eventkernel/sim/scheduling"
	"github.com/sarchlab/eventkernel/sim/timing"
	"github.com/sarchlab/eventkernel/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single-server queueing workload.",
	Long: "`run` simulates customers that arrive in same-instant groups, " +
		"wait in a process queue and are served one at a time. " +
		"It prints the final state of the event list and the queue.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		arrivals, _ := cmd.Flags().GetInt("arrivals")

		return run(cfg, arrivals, cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().String("config", "", "Path to a YAML configuration file.")
	runCmd.Flags().String("env", ".env", "Path to a .env file.")
	runCmd.Flags().Int("arrivals", 30, "Number of customers to generate.")
	runCmd.Flags().Int64("seed", 0, "Seed of the random streams.")
	runCmd.Flags().Int("capacity", 0, "Capacity of the queue, 0 is unlimited.")
	runCmd.Flags().String("discipline", "", "Queue discipline: fifo, lifo or random.")
	runCmd.Flags().Bool("randomize", false, "Randomize the order of same-time events.")
	runCmd.Flags().String("trace", "", "Record hook invocations to this path.")

	rootCmd.AddCommand(runCmd)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env")

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}

	if flags.Changed("capacity") {
		cfg.Queue.Capacity, _ = flags.GetInt("capacity")
	}

	if flags.Changed("discipline") {
		cfg.Queue.Discipline, _ = flags.GetString("discipline")
	}

	if flags.Changed("randomize") {
		cfg.RandomizeTies, _ = flags.GetBool("randomize")
	}

	if flags.Changed("trace") {
		cfg.Trace.Enabled = true
		cfg.Trace.Path, _ = flags.GetString("trace")
	}

	return cfg, nil
}

func run(cfg config.Config, arrivals int, out io.Writer) error {
	logrus.SetLevel(cfg.Level())

	model, err := cfg.TimeModel()
	if err != nil {
		return err
	}

	discipline, err := cfg.QueueDiscipline()
	if err != nil {
		return err
	}

	streams := cfg.RNG()
	list := cfg.NewEventList("Events", streams)
	scheduler := scheduling.NewScheduler(model, list,
		eventlist.NewArena(cfg.NewIDGenerator()))

	queue := queueing.MakeBuilder[*customer]().
		WithDiscipline(discipline).
		WithCapacity(cfg.Queue.Capacity).
		WithRand(cfg.QueueRand(streams, "Waiting")).
		Build("Waiting")

	if err := attachHooks(cfg, scheduler, list, queue); err != nil {
		return err
	}

	w := newWorkload(scheduler, queue,
		streams.ForSubsystem(rng.SubsystemWorkload))
	if err := w.generate(arrivals); err != nil {
		return err
	}

	if err := scheduler.Run(); err != nil {
		return fmt.Errorf("simulation aborted: %w", err)
	}

	scheduler.Finished()

	return printResults(out, scheduler, list, queue, w)
}

func attachHooks(
	cfg config.Config,
	scheduler *scheduling.Scheduler,
	list eventlist.EventList,
	queue *queueing.ProcessQueue[*customer],
) error {
	domains := []hooking.Hookable{scheduler, list, queue}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logHook := hooking.NewLogHook(nil)
		for _, d := range domains {
			d.AcceptHook(logHook)
		}
	}

	if !cfg.Trace.Enabled {
		return nil
	}

	var writer tracing.TraceWriter
	if cfg.Trace.Format == "csv" {
		writer = tracing.NewCSVTraceWriter(cfg.Trace.Path)
	} else {
		writer = tracing.NewSQLiteTraceWriter(cfg.Trace.Path)
	}

	if err := writer.Init(); err != nil {
		return err
	}

	tracer := tracing.NewTracer(scheduler, writer)
	for _, d := range domains {
		d.AcceptHook(tracer)
	}

	return nil
}

func printResults(
	out io.Writer,
	scheduler *scheduling.Scheduler,
	list eventlist.EventList,
	queue *queueing.ProcessQueue[*customer],
	w *workload,
) error {
	reporter := reporting.NewReporter()
	reporter.AddList(list)
	reporter.AddQueue(queue)
	reporter.SetClock(scheduler, timing.DefaultFormatter(scheduler.Model()))

	if err := reporter.WriteReport(out); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nServed: %d, Reneged: %d, Refused: %d\n",
		w.served, w.reneged, queue.Refused())
	fmt.Fprintf(out, "Mean queue length: %.3f (%d samples)\n",
		w.sampler.mean(), w.sampler.samples)

	if err := printMetrics(out, reporter); err != nil {
		return err
	}

	return printResourceUsage(out)
}

func printMetrics(out io.Writer, reporter *reporting.Reporter) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(reporter); err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nMetrics:")

	var lines []string

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels,
					fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}

			value := m.GetGauge().GetValue()
			if m.GetCounter() != nil {
				value = m.GetCounter().GetValue()
			}

			lines = append(lines, fmt.Sprintf("%s{%s} %g",
				mf.GetName(), strings.Join(labels, ","), value))
		}
	}

	sort.Strings(lines)

	for _, l := range lines {
		fmt.Fprintln(out, l)
	}

	return nil
}

func printResourceUsage(out io.Writer) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return err
	}

	times, err := p.Times()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nRSS: %d bytes, CPU: %.3fs\n",
		mem.RSS, times.User+times.System)

	return nil
}
