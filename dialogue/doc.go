// Package dialogue implements the multi-turn conversation state machine.
//
// A Manager owns one turn at a time: it classifies the user's input,
// consults the session's pending context, dispatches to an intent handler
// and renders the reply. Obvious confirmations of a pending request are
// short-circuited locally and never reach the NLU provider.
package dialogue
