/*
Package config implements a parser for simulation run configuration
represented in the TOML format: https://github.com/toml-lang/toml.

The run's parameters and its two peers' transport parameters are called
out in the configuration file using named TOML tables.

	[run]

	# nsimmax is the number of application messages to generate before
	# the simulation stops admitting new traffic. Zero means no limit.
	nsimmax = 500

	# loss_prob is the probability, in [0,1], that any given packet is
	# lost in transit.
	loss_prob = 0.1

	# corrupt_prob is the probability, in [0,1], that any given packet
	# that isn't lost arrives corrupted.
	corrupt_prob = 0.1

	# lambda is the mean inter-arrival time of new application messages,
	# in simulated time units.
	lambda = 15.0

	# seed initialises the run's random number generator, for
	# reproducible simulations.
	seed = 9999

	# This is peer "a"'s transport configuration.
	[run.peers.a]

	# window is the maximum number of unacknowledged packets peer a may
	# have in flight at once. Defaults to 8 if unset.
	window = 8

	# timer_increment is peer a's retransmission timer duration, in
	# simulated time units. Defaults to 17 if unset.
	timer_increment = 17

	[run.peers.b]
	window = 8
	timer_increment = 17
*/
package config
