// Package emit renders a resolved session plan into shell startup script.
//
// The emitted text is what `eval "$(shrc init <shell>)"` executes. zsh is
// the primary target; bash gets a reduced profile (no completion dump
// handling and no plugin loading, since the configured plugins are zsh
// plugins).
package emit

import (
	"fmt"
	"strings"

	"github.com/doeshing/shrc/internal/domain"
	"github.com/doeshing/shrc/internal/ports"
)

// Emitter implements ports.ScriptEmitter.
type Emitter struct{}

// New builds an emitter.
func New() *Emitter {
	return &Emitter{}
}

// Render produces the startup script for the plan's shell.
func (e *Emitter) Render(plan domain.ScriptPlan) (string, error) {
	switch plan.Shell {
	case domain.ShellZsh:
		return renderZsh(plan), nil
	case domain.ShellBash:
		return renderBash(plan), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", plan.Shell)
	}
}

func renderZsh(plan domain.ScriptPlan) string {
	var b strings.Builder
	b.WriteString("# shrc session bootstrap (zsh)\n")

	if plan.PreHook != "" {
		fmt.Fprintf(&b, "[[ -r %q ]] && source %q\n", plan.PreHook, plan.PreHook)
	}

	writeZshHistory(&b, plan.History)
	writeZshCompletion(&b, plan.Completion)
	writePrompt(&b, plan.Prompt, zshPromptVar)
	writeAliases(&b, plan.Aliases)
	if plan.Features.WindowTitle {
		writeZshTitle(&b, plan.TitleFmt)
	}
	writeZshPlugins(&b, plan)

	if plan.PostHook != "" {
		fmt.Fprintf(&b, "[[ -r %q ]] && source %q\n", plan.PostHook, plan.PostHook)
	}
	return b.String()
}

func writeZshHistory(b *strings.Builder, h domain.HistorySettings) {
	b.WriteString("\n# history policy (store owned by the shell runtime)\n")
	if h.File != "" {
		fmt.Fprintf(b, "export HISTFILE=%q\n", h.File)
	}
	fmt.Fprintf(b, "export HISTSIZE=%d\n", h.Size)
	fmt.Fprintf(b, "export SAVEHIST=%d\n", h.SaveSize)
	var opts []string
	if h.IgnoreDups {
		opts = append(opts, "hist_ignore_dups")
	}
	if h.IgnoreSpace {
		opts = append(opts, "hist_ignore_space")
	}
	if h.EraseDups {
		opts = append(opts, "hist_ignore_all_dups")
	}
	if h.ShareSessions {
		opts = append(opts, "share_history")
	}
	if h.ExtendedTimestamps {
		opts = append(opts, "extended_history")
	}
	for _, opt := range opts {
		fmt.Fprintf(b, "setopt %s\n", opt)
	}
}

func writeZshCompletion(b *strings.Builder, c domain.CompletionPlan) {
	b.WriteString("\n# completion cache (directory ensured by shrc before emission)\n")
	fmt.Fprintf(b, "export SHRC_COMPDUMP=%q\n", c.DumpPath)
	b.WriteString("autoload -Uz compinit\n")
	fmt.Fprintf(b, "compinit -d %q\n", c.DumpPath)
}

const (
	zshPromptVar  = "PROMPT"
	bashPromptVar = "PS1"
)

func writePrompt(b *strings.Builder, p domain.PromptInit, promptVar string) {
	b.WriteString("\n# prompt\n")
	if p.UseFallback {
		fallback := p.Fallback
		if promptVar == bashPromptVar {
			fallback = bashPromptEscapes(fallback)
		}
		// single quotes keep prompt escapes (backslashes, percent codes)
		// out of reach of both shells' expansion
		fmt.Fprintf(b, "%s=%s\n", promptVar, singleQuote(fallback))
		return
	}
	b.WriteString(p.InitLine + "\n")
}

func writeAliases(b *strings.Builder, aliases []domain.Alias) {
	b.WriteString("\n# listing aliases\n")
	for _, a := range aliases {
		fmt.Fprintf(b, "alias %s=%s\n", a.Name, singleQuote(a.Command))
	}
}

// singleQuote wraps s for the shell, escaping embedded single quotes with
// the '\'' idiom so user-configured text cannot break the script.
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func writeZshTitle(b *strings.Builder, format string) {
	b.WriteString("\n# window title\n")
	b.WriteString("_shrc_set_title() {\n")
	fmt.Fprintf(b, "  print -Pn \"\\e]0;%s\\a\"\n", format)
	b.WriteString("}\n")
	b.WriteString("autoload -Uz add-zsh-hook\n")
	b.WriteString("add-zsh-hook precmd _shrc_set_title\n")
}

// writeZshPlugins emits the plugin section. Deferred units keep strict FIFO
// order: behind the shim when it loads, synchronously otherwise.
func writeZshPlugins(b *strings.Builder, plan domain.ScriptPlan) {
	if plan.DeferShim == nil && len(plan.Deferred) == 0 {
		return
	}
	b.WriteString("\n# plugins\n")

	deferCmd := "source"
	if plan.DeferShim != nil {
		fmt.Fprintf(b, "[[ -r %q ]] && source %q\n", plan.DeferShim.Path, plan.DeferShim.Path)
		// zsh-defer runs callbacks after the first prompt becomes idle,
		// draining them in registration order.
		deferCmd = "zsh-defer source"
	}
	for _, p := range plan.Deferred {
		fmt.Fprintf(b, "[[ -r %q ]] && %s %q  # %s\n", p.Path, deferCmd, p.Path, p.Name)
	}
}

func renderBash(plan domain.ScriptPlan) string {
	var b strings.Builder
	b.WriteString("# shrc session bootstrap (bash)\n")

	if plan.PreHook != "" {
		fmt.Fprintf(&b, "[ -r %q ] && . %q\n", plan.PreHook, plan.PreHook)
	}

	writeBashHistory(&b, plan.History)
	writePrompt(&b, plan.Prompt, bashPromptVar)
	writeAliases(&b, plan.Aliases)
	if plan.Features.WindowTitle {
		writeBashTitle(&b)
	}

	if plan.PostHook != "" {
		fmt.Fprintf(&b, "[ -r %q ] && . %q\n", plan.PostHook, plan.PostHook)
	}
	return b.String()
}

func writeBashHistory(b *strings.Builder, h domain.HistorySettings) {
	b.WriteString("\n# history policy (store owned by the shell runtime)\n")
	if h.File != "" {
		fmt.Fprintf(b, "export HISTFILE=%q\n", h.File)
	}
	fmt.Fprintf(b, "export HISTSIZE=%d\n", h.Size)
	fmt.Fprintf(b, "export HISTFILESIZE=%d\n", h.SaveSize)
	var controls []string
	if h.IgnoreDups || h.EraseDups {
		controls = append(controls, "ignoredups")
	}
	if h.IgnoreSpace {
		controls = append(controls, "ignorespace")
	}
	if h.EraseDups {
		controls = append(controls, "erasedups")
	}
	if len(controls) > 0 {
		fmt.Fprintf(b, "export HISTCONTROL=%s\n", strings.Join(controls, ":"))
	}
	if h.ShareSessions {
		b.WriteString("shopt -s histappend\n")
	}
	if h.ExtendedTimestamps {
		b.WriteString("export HISTTIMEFORMAT='%F %T '\n")
	}
}

// writeBashTitle emits the PROMPT_COMMAND title hook. bash lacks zsh's
// prompt expansion, so the title is built from $USER/$HOSTNAME directly
// rather than from the configured format.
func writeBashTitle(b *strings.Builder) {
	b.WriteString("\n# window title\n")
	b.WriteString("_shrc_set_title() {\n")
	b.WriteString("  printf '\\033]0;%s@%s: %s\\007' \"$USER\" \"${HOSTNAME%%.*}\" \"${PWD/#$HOME/\\~}\"\n")
	b.WriteString("}\n")
	b.WriteString("PROMPT_COMMAND=\"_shrc_set_title;${PROMPT_COMMAND}\"\n")
}

// bashPromptEscapes translates the zsh prompt template escapes used by the
// static fallback into their bash equivalents.
func bashPromptEscapes(template string) string {
	r := strings.NewReplacer(
		"%n", `\u`,
		"%m", `\h`,
		"%1~", `\W`,
		"%~", `\w`,
		"%#", `\$`,
	)
	return r.Replace(template)
}

var _ ports.ScriptEmitter = (*Emitter)(nil)
