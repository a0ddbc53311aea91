// Package template defines the engine-agnostic template rendering seam used
// by the invoice renderer for its fallback layouts.
package template
