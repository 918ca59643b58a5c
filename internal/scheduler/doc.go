// Package scheduler implements the discrete-event core of the
// simulator: a time-ordered event queue and the run loop that drains it.
//
// Events are held in a github.com/google/btree-ordered queue keyed by
// simulated time, with insertion order breaking ties so same-instant
// events drain FIFO. The external contract is small: Schedule an event
// for some future time, cancel a pending timer, Run the queue to
// completion. A caller that tries to start a timer that is already
// pending, or cancel one that isn't running, gets a logged warning
// rather than a crash.
package scheduler
