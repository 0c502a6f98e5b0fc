package promptengine

import (
	"github.com/doeshing/shrc/internal/ports"
)

// Factory resolves prompt engines from the configured probe order.
type Factory struct{}

// NewFactory builds an engine factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Resolve probes the order and returns the first available engine. When no
// binary resolves, the static engine with the given fallback is returned.
// Absence of every engine is not an error, only the lowest-priority outcome.
func (f *Factory) Resolve(order []string, fallback string, prober ports.ToolProber) ports.PromptEngine {
	for _, name := range order {
		if name == StaticEngineName {
			break
		}
		if prober.Available(name) {
			return &binaryEngine{name: name}
		}
	}
	return &staticEngine{fallback: fallback}
}

var _ ports.PromptEngineFactory = (*Factory)(nil)
