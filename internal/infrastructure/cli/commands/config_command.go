package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/shrc/internal/app"
	"github.com/doeshing/shrc/internal/domain"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the configuration file",
	}

	cmd.AddCommand(
		newConfigShowCommand(container),
		newConfigGetCommand(container),
		newConfigSetCommand(container),
		newConfigPathCommand(container),
		newConfigResetCommand(container),
	)
	return cmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ensure the file exists (first run writes the defaults).
			if _, err := container.ConfigProvider.Load(cmd.Context()); err != nil {
				return err
			}
			data, err := os.ReadFile(container.ConfigLoader.Path())
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigGetCommand creates the 'config get' subcommand
func newConfigGetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value by key path (e.g. listing.tool)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMap, err := loadConfigMap(container)
			if err != nil {
				return err
			}
			value, found := traverseMap(cfgMap, strings.Split(args[0], "."))
			if !found {
				return fmt.Errorf("key %s not found in configuration", args[0])
			}
			data, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("marshal value: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigSetCommand creates the 'config set' subcommand
func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value (value accepts YAML syntax)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgMap, err := loadConfigMap(container)
			if err != nil {
				return err
			}

			var parsed interface{}
			raw := strings.Join(args[1:], " ")
			if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
				return fmt.Errorf("parse value %q: %w", raw, err)
			}
			if !setMapValue(cfgMap, strings.Split(args[0], "."), parsed) {
				return fmt.Errorf("unable to set key %s", args[0])
			}

			data, err := yaml.Marshal(cfgMap)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			// Round-trip through the typed config to reject unparsable edits
			// before they reach disk.
			var check domain.Config
			if err := yaml.Unmarshal(data, &check); err != nil {
				return fmt.Errorf("value does not fit %s: %w", args[0], err)
			}
			if err := os.WriteFile(container.ConfigLoader.Path(), data, domain.FilePermissions); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], container.ConfigLoader.Path())
			return err
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return err
		},
	}
}

// newConfigResetCommand creates the 'config reset' subcommand
func newConfigResetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset: %s\n", container.ConfigLoader.Path())
			return err
		},
	}
}

// loadConfigMap reads the config file into a generic map for key-path
// traversal, writing the defaults first when the file does not exist yet.
func loadConfigMap(container *app.Container) (map[string]interface{}, error) {
	if _, err := container.ConfigProvider.Load(context.Background()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(container.ConfigLoader.Path())
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfgMap map[string]interface{}
	if err := yaml.Unmarshal(data, &cfgMap); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfgMap == nil {
		cfgMap = map[string]interface{}{}
	}
	return cfgMap, nil
}

// traverseMap walks a dotted key path through nested maps.
func traverseMap(m map[string]interface{}, keys []string) (interface{}, bool) {
	var current interface{} = m
	for _, key := range keys {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setMapValue writes a value at a dotted key path, creating intermediate
// maps as needed. Fails when a path segment is occupied by a non-map value.
func setMapValue(m map[string]interface{}, keys []string, value interface{}) bool {
	for i, key := range keys {
		if i == len(keys)-1 {
			m[key] = value
			return true
		}
		// A key holding null (a section with every child commented out)
		// counts as absent.
		next, ok := m[key]
		if !ok || next == nil {
			child := map[string]interface{}{}
			m[key] = child
			m = child
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return false
		}
		m = child
	}
	return false
}
