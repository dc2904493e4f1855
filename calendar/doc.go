// Package calendar houses concrete implementations of core.CalendarStore.
// The interface itself lives in the core package to centralize domain
// contracts; keeping only implementations here prevents higher level
// packages (dialogue, scheduling) from depending on concrete storage.
//
// Additional backends live in sub-packages (sqlite, google, ics) so only
// the wiring layer decides which implementation to instantiate.
package calendar
