/*
The gbnsim command runs a discrete-event simulation of two Go-Back-N peers,
A and B, exchanging application messages over a lossy, corrupting,
order-preserving channel.

gbnsim is driven by a TOML configuration file describing the run: how many
messages to generate, the channel's loss/corruption probabilities, the mean
inter-arrival time, the random seed, and each peer's window/timer
parameters. For more information on the configuration file format refer to
package config's documentation.

Metrics are exposed over HTTP in Prometheus exposition format for the
lifetime of the run.
*/
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sys/unix"

	"github.com/katalix/go-gbn/config"
	"github.com/katalix/go-gbn/gbn"
	"github.com/katalix/go-gbn/internal/netem"
	"github.com/katalix/go-gbn/internal/scheduler"
	"github.com/katalix/go-gbn/internal/sink"
	"github.com/katalix/go-gbn/metrics"
)

const (
	entityA = "a"
	entityB = "b"
)

// application wires together one simulation run's collaborators:
// scheduler, channels, entities, sinks and the metrics server — grouping
// everything the signal handler and main loop need to reach.
type application struct {
	logger    log.Logger
	runID     uuid.UUID
	cfg       *config.Config
	sched     *scheduler.Scheduler
	sinkA     *sink.Sink
	sinkB     *sink.Sink
	entityA   *gbn.Entity
	entityB   *gbn.Entity
	rng       *rand.Rand
	nsim      int
	nsimmax   int
	generated int
}

func newApplication(logger log.Logger, cfg *config.Config) *application {
	app := &application{
		logger:  logger,
		runID:   uuid.New(),
		cfg:     cfg,
		sched:   scheduler.New(logger),
		rng:     rand.New(rand.NewSource(cfg.Run.Seed)),
		nsimmax: cfg.Run.NSimMax,
	}

	app.sinkA = sink.New(logger, entityA)
	app.sinkB = sink.New(logger, entityB)

	chAtoB := netem.New(logger, app.sched, app.rng, cfg.Run.LossProb, cfg.Run.CorruptProb, entityA, entityB)
	chBtoA := netem.New(logger, app.sched, app.rng, cfg.Run.LossProb, cfg.Run.CorruptProb, entityB, entityA)

	gbnCfgA := cfg.Run.Peers[entityA].GBNConfig()
	gbnCfgB := cfg.Run.Peers[entityB].GBNConfig()
	gbnCfgA.Name, gbnCfgB.Name = entityA, entityB
	gbn.SanitiseConfig(&gbnCfgA)
	gbn.SanitiseConfig(&gbnCfgB)

	timerA := scheduler.NewPeerTimer(app.sched, entityA, float64(gbnCfgA.TimerIncrement))
	timerB := scheduler.NewPeerTimer(app.sched, entityB, float64(gbnCfgB.TimerIncrement))

	app.entityA = gbn.NewEntity(logger, gbnCfgA, chAtoB, timerA, app.sinkA)
	app.entityB = gbn.NewEntity(logger, gbnCfgB, chBtoA, timerB, app.sinkB)
	app.entityA.Init()
	app.entityB.Init()

	return app
}

// scheduleNextArrival queues the next application-message arrival. The
// inter-arrival time is uniform on [0, 2*lambda], giving it a mean of
// lambda, and the arrival is addressed to A or B with equal probability,
// so traffic flows in both directions rather than only A to B.
func (app *application) scheduleNextArrival() {
	if app.nsimmax > 0 && app.generated >= app.nsimmax {
		return
	}
	delay := app.cfg.Run.Lambda * app.rng.Float64() * 2
	entity := entityA
	if app.rng.Float64() > 0.5 {
		entity = entityB
	}
	app.sched.Schedule(delay, scheduler.MessageArrival, entity, nil)
	app.generated++
}

// nextMessage builds the next application message, cycling through the
// letters 'a'..'z' with all payload bytes set to the same letter, so a
// delivered payload identifies its submission at a glance in logs.
func (app *application) nextMessage() gbn.Message {
	var msg gbn.Message
	letter := byte('a' + app.nsim%26)
	for i := range msg {
		msg[i] = letter
	}
	return msg
}

// run drains the scheduler's event queue, dispatching each event to the
// appropriate entity, until nsimmax messages have been generated and all
// resulting in-flight packets and timers have drained.
func (app *application) run() {
	app.scheduleNextArrival()

	app.sched.Run(func(ev scheduler.Event) bool {
		switch ev.Type {
		case scheduler.MessageArrival:
			msg := app.nextMessage()
			app.nsim++
			app.scheduleNextArrival()
			app.entityForName(ev.Entity).Submit(msg)

		case scheduler.PacketArrival:
			pkt, ok := ev.Packet.(*gbn.Packet)
			if !ok {
				level.Error(app.logger).Log("message", "packet arrival event carried no packet", "entity", ev.Entity)
				return true
			}
			app.entityForName(ev.Entity).OnPacket(pkt)

		case scheduler.TimerInterrupt:
			app.entityForName(ev.Entity).OnTimeout()
		}
		metrics.WindowOccupancy.WithLabelValues(entityA).Set(float64(app.entityA.Outstanding()))
		metrics.WindowOccupancy.WithLabelValues(entityB).Set(float64(app.entityB.Outstanding()))
		return true
	})

	level.Info(app.logger).Log(
		"message", "simulation complete",
		"run_id", app.runID,
		"messages_generated", app.nsim,
		"delivered_a", len(app.sinkA.Delivered()),
		"delivered_b", len(app.sinkB.Delivered()))
}

func (app *application) entityForName(name string) *gbn.Entity {
	if name == entityB {
		return app.entityB
	}
	return app.entityA
}

func main() {
	cfgPathPtr := flag.String("config", "gbnsim.toml", "specify configuration file path")
	metricsAddrPtr := flag.String("metrics-addr", ":9090", "address to serve prometheus metrics on")
	verbosePtr := flag.Bool("verbose", false, "toggle verbose log output")
	flag.Parse()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)

	baseLogger := log.NewLogfmtLogger(os.Stderr)
	var logger log.Logger
	if *verbosePtr {
		logger = level.NewFilter(baseLogger, level.AllowDebug())
	} else {
		logger = level.NewFilter(baseLogger, level.AllowInfo())
	}

	cfg, err := config.LoadFile(*cfgPathPtr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gbnsim configuration: %v\n", err)
		os.Exit(1)
	}

	app := newApplication(logger, cfg)
	level.Info(app.logger).Log("message", "starting simulation run", "run_id", app.runID,
		"nsimmax", cfg.Run.NSimMax, "loss_prob", cfg.Run.LossProb, "corrupt_prob", cfg.Run.CorruptProb)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(*metricsAddrPtr, nil); err != nil {
			level.Error(app.logger).Log("message", "metrics server exited", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		app.run()
		close(done)
	}()

	select {
	case <-done:
	case <-sigs:
		level.Info(app.logger).Log("message", "interrupted, stopping simulation")
	}
}
