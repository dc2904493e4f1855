// Package schedule implements the scheduling engine: availability checks,
// recurring occurrence generation and alternative slot search over a
// calendar store.
//
// The engine is deliberately conservative: a single meeting is only created
// when its slot is completely free, and a recurring series is created
// all-or-nothing after every occurrence has been checked for conflicts.
package schedule
