// Package config implements "simcore config": inspecting and editing a
// run descriptor's fields without opening an editor.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sentra-lab/simcore/internal/config"
	"github.com/sentra-lab/simcore/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configCommand struct {
	logger *utils.Logger
	path   string
}

func NewConfigCommand(logger *utils.Logger) *cobra.Command {
	cc := &configCommand{logger: logger}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit a run descriptor",
		Long: `View and modify a run descriptor's fields.

Subcommands:
  get <key>           - Get a field by dot path
  set <key> <value>   - Set a field by dot path
  list                - Print every field
  validate            - Validate the file
  migrate             - Upgrade to the latest schema version

Examples:
  simcore config get simulation.concurrency
  simcore config set simulation.concurrency 50
  simcore config list
  simcore config validate`,
	}

	cmd.PersistentFlags().StringVar(&cc.path, "file", "run.yaml", "Run descriptor path")

	cmd.AddCommand(
		newGetCommand(cc),
		newSetCommand(cc),
		newListCommand(cc),
		newValidateCommand(cc),
		newMigrateCommand(cc),
	)

	return cmd
}

func newGetCommand(cc *configCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a field by dot path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.load()
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return fmt.Errorf("key not found: %s", args[0])
			}
			fmt.Println(formatValue(value))
			return nil
		},
	}
}

func newSetCommand(cc *configCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a field by dot path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader(cc.path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("parse config: %w", err)
			}

			parsed := parseValue(args[1])
			if err := cfg.Set(args[0], parsed); err != nil {
				return fmt.Errorf("set value: %w", err)
			}
			if err := loader.Save(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			cc.logger.Info(fmt.Sprintf("set %s = %v", args[0], parsed))
			return nil
		},
	}
}

func newListCommand(cc *configCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every field",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.load()
			if err != nil {
				return err
			}
			cc.logger.Info(fmt.Sprintf("configuration from: %s", cc.path))
			printConfigTree(cc.logger, cfg.Raw(), 0)
			return nil
		},
	}
}

func newValidateCommand(cc *configCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the run descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.load()
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			if err := config.NewValidator().Validate(cfg); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			cc.logger.Info("configuration is valid")
			return nil
		},
	}
}

func newMigrateCommand(cc *configCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate to the latest schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader(cc.path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg, err := loader.Load()
			if err != nil {
				return fmt.Errorf("parse config: %w", err)
			}

			backupPath := cc.path + ".backup"
			if err := copyFile(cc.path, backupPath); err != nil {
				return fmt.Errorf("backup config: %w", err)
			}
			cc.logger.Info(fmt.Sprintf("backed up config to %s", backupPath))

			migrated, err := config.NewMigrator().Migrate(cfg)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if !migrated {
				cc.logger.Info("config is already up to date")
				os.Remove(backupPath)
				return nil
			}

			if err := loader.Save(cfg); err != nil {
				return fmt.Errorf("save migrated config: %w", err)
			}
			cc.logger.Info("config migrated successfully")
			return nil
		},
	}
}

func (cc *configCommand) load() (*config.Config, error) {
	loader, err := config.NewLoader(cc.path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func printConfigTree(logger *utils.Logger, data map[string]interface{}, indent int) {
	for key, value := range data {
		prefix := strings.Repeat("  ", indent)

		switch v := value.(type) {
		case map[string]interface{}:
			logger.Info(fmt.Sprintf("%s%s:", prefix, key))
			printConfigTree(logger, v, indent+1)
		default:
			logger.Info(fmt.Sprintf("%s%s: %v", prefix, key, formatValue(v)))
		}
	}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int, int64, float64:
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]interface{}:
		data, _ := yaml.Marshal(v)
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseValue(value string) interface{} {
	value = strings.TrimSpace(value)

	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}

	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		inner := strings.Trim(value, "[]")
		parts := strings.Split(inner, ",")
		result := make([]interface{}, len(parts))
		for i, part := range parts {
			result[i] = parseValue(strings.TrimSpace(part))
		}
		return result
	}

	if strings.Contains(value, ".") {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}

	var i int
	if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
		return i
	}

	return value
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
