// Package render turns dialogue situations into user-facing reply text.
//
// The default TextRenderer is fully deterministic: every situation tag maps
// to a fixed template and the reply only ever contains values carried in
// the situation facts. Swapping in a model-backed renderer is a matter of
// implementing core.Renderer.
package render
