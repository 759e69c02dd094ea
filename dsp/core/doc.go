// Package core holds small helpers shared by the processing packages:
// stream configuration, level conversions and buffer plumbing.
package core
