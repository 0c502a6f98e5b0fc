// Package promptengine selects and initializes the session prompt.
//
// Prompt rendering is delegated to an external engine binary (starship,
// oh-my-posh) when one resolves on PATH; otherwise a static fallback prompt
// is used. The engine set is closed and chosen exactly once per session.
package promptengine

import (
	"fmt"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/ports"
)

// StaticEngineName identifies the built-in fallback prompt.
const StaticEngineName = "static"

// binaryEngine delegates prompt rendering to an external binary's init
// output, evaluated by the shell at startup.
type binaryEngine struct {
	name string
}

func (e *binaryEngine) Name() string { return e.name }

// InitFor renders the eval line for the engine. Unsupported shells fall
// back to the static prompt; an engine is never an error source.
func (e *binaryEngine) InitFor(shell domain.ShellName) domain.PromptInit {
	var line string
	switch shell {
	case domain.ShellZsh, domain.ShellBash:
		line = fmt.Sprintf("eval \"$(%s init %s)\"", e.name, shell)
	default:
		return staticInit(domain.DefaultPromptFallback)
	}
	return domain.PromptInit{Engine: e.name, InitLine: line}
}

// staticEngine always succeeds: it renders a fixed prompt template with no
// external dependency.
type staticEngine struct {
	fallback string
}

func (e *staticEngine) Name() string { return StaticEngineName }

func (e *staticEngine) InitFor(domain.ShellName) domain.PromptInit {
	return staticInit(e.fallback)
}

func staticInit(fallback string) domain.PromptInit {
	if fallback == "" {
		fallback = domain.DefaultPromptFallback
	}
	return domain.PromptInit{Engine: StaticEngineName, Fallback: fallback, UseFallback: true}
}

var (
	_ ports.PromptEngine = (*binaryEngine)(nil)
	_ ports.PromptEngine = (*staticEngine)(nil)
)
