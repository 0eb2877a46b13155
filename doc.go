// Package countdown provides a countdown timer state machine driven by a
// per-frame animation clock.
//
// The package includes a frame clock abstraction with real and manual
// implementations, a lazy frame ticker exposing clock frames as a cancellable
// sequence, and a timer that converts frame ticks into countdown progress
// with pause, resume and restart support. It provides the building blocks
// needed to render countdowns, deadlines and other time-driven animations.
package countdown
