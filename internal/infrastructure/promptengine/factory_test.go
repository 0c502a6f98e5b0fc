package promptengine

import (
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/infrastructure/toolprobe"
)

func proberWith(available ...string) *toolprobe.Prober {
	set := map[string]bool{}
	for _, a := range available {
		set[a] = true
	}
	return toolprobe.NewWithLookup(func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	})
}

// TestFactory_Resolve tests engine selection across the probe order
func TestFactory_Resolve(t *testing.T) {
	order := []string{"starship", "oh-my-posh"}

	tests := []struct {
		name       string
		available  []string
		wantEngine string
	}{
		{"first engine wins", []string{"starship", "oh-my-posh"}, "starship"},
		{"second engine when first absent", []string{"oh-my-posh"}, "oh-my-posh"},
		{"static fallback when none resolve", nil, StaticEngineName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewFactory().Resolve(order, "%~ $ ", proberWith(tt.available...))
			if engine.Name() != tt.wantEngine {
				t.Errorf("engine = %s, want %s", engine.Name(), tt.wantEngine)
			}
		})
	}
}

// TestBinaryEngine_InitFor tests the delegated eval line per shell
func TestBinaryEngine_InitFor(t *testing.T) {
	engine := NewFactory().Resolve([]string{"starship"}, "", proberWith("starship"))

	init := engine.InitFor(domain.ShellZsh)
	if init.UseFallback {
		t.Fatal("expected delegated init, got fallback")
	}
	if !strings.Contains(init.InitLine, "starship init zsh") {
		t.Errorf("init line = %q, want starship init zsh delegation", init.InitLine)
	}

	init = engine.InitFor(domain.ShellBash)
	if !strings.Contains(init.InitLine, "starship init bash") {
		t.Errorf("init line = %q, want starship init bash delegation", init.InitLine)
	}

	// unsupported shell degrades to the static prompt rather than erroring
	init = engine.InitFor(domain.ShellUnknown)
	if !init.UseFallback {
		t.Error("unknown shell should use the static fallback")
	}
}

// TestStaticEngine_Fallback tests the fallback template and its default
func TestStaticEngine_Fallback(t *testing.T) {
	engine := NewFactory().Resolve(nil, "%n %# ", proberWith())
	init := engine.InitFor(domain.ShellZsh)
	if !init.UseFallback {
		t.Fatal("static engine must use fallback")
	}
	if init.Fallback != "%n %# " {
		t.Errorf("fallback = %q, want configured template", init.Fallback)
	}

	engine = NewFactory().Resolve(nil, "", proberWith())
	if got := engine.InitFor(domain.ShellZsh).Fallback; got != domain.DefaultPromptFallback {
		t.Errorf("fallback = %q, want default %q", got, domain.DefaultPromptFallback)
	}
}
