// Package metrics defines the prometheus metric types exported by a
// simulation run, mirroring the counters/gauges registration style used
// throughout the wider example pack for operational accounting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsSent counts every packet handed to a channel, broken down by
	// the entity that sent it and whether it was a "data" or "ack" packet.
	// Provides metric:
	//    gbnsim_packets_sent_total
	// Example usage:
	//    metrics.PacketsSent.WithLabelValues("a", "data").Inc()
	PacketsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbnsim_packets_sent_total",
		Help: "Total packets handed to the channel, by sending entity and packet kind.",
	}, []string{"entity", "kind"})

	// PacketsLost counts packets the channel emulator dropped before
	// delivery.
	// Provides metric:
	//    gbnsim_packets_lost_total
	PacketsLost = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbnsim_packets_lost_total",
		Help: "Total packets lost in transit, by sending entity.",
	}, []string{"entity"})

	// PacketsCorrupted counts packets the channel emulator corrupted
	// before delivery.
	// Provides metric:
	//    gbnsim_packets_corrupted_total
	PacketsCorrupted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbnsim_packets_corrupted_total",
		Help: "Total packets corrupted in transit, by sending entity.",
	}, []string{"entity"})

	// PacketsRetransmitted counts packets an entity retransmitted,
	// whether due to a timer expiry or a corrupt ack.
	// Provides metric:
	//    gbnsim_packets_retransmitted_total
	PacketsRetransmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbnsim_packets_retransmitted_total",
		Help: "Total packets retransmitted, by entity and cause.",
	}, []string{"entity", "cause"})

	// MessagesDelivered counts application messages delivered in order to
	// an entity's sink.
	// Provides metric:
	//    gbnsim_messages_delivered_total
	MessagesDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbnsim_messages_delivered_total",
		Help: "Total application messages delivered in order, by receiving entity.",
	}, []string{"entity"})

	// WindowOccupancy reports the number of currently outstanding
	// (unacknowledged) packets for an entity.
	// Provides metric:
	//    gbnsim_window_occupancy
	WindowOccupancy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gbnsim_window_occupancy",
		Help: "Current number of unacknowledged outstanding packets, by entity.",
	}, []string{"entity"})
)
