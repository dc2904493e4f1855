// Package nlu defines the provider-agnostic abstraction for natural
// language understanding of scheduling requests.
//
// Core goals:
//   - Turn one free-form user message (plus recent history) into a typed
//     intent with extracted scheduling fields
//   - Keep the prompt and response contract in one place so provider
//     adapters stay thin
//   - Degrade gracefully: a keyword fallback classifier covers provider
//     outages and malformed completions
//
// Providers (e.g. OpenAI, Anthropic) implement the Provider interface from
// this package so the dialogue layer remains decoupled from vendor SDKs.
package nlu
