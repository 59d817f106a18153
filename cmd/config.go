package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/config"
	"github.com/marcus/devsetup/internal/output"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage devsetup defaults",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (an empty value restores the default)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		dir, err := config.DataDir()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if key == "framework" && val != "" {
			fw, err := catalog.Default().ParseFramework(val)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			val = string(fw)
		}
		if err := config.Set(dir, key, val); err != nil {
			output.Error("%v", err)
			return err
		}
		if val == "" {
			output.Success("Reset %s", key)
		} else {
			output.Success("Set %s = %s", key, val)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		v, err := cfg.Get(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every config value",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		cfg, err := loadConfig()
		if err != nil {
			return fail(jsonOut, output.ErrCodeStorageError, err)
		}

		values := map[string]string{}
		for _, k := range config.Keys() {
			values[k], _ = cfg.Get(k)
		}
		if jsonOut {
			return output.JSON(values)
		}
		for _, k := range config.Keys() {
			fmt.Printf("%-16s %s\n", k, values[k])
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

func init() {
	configListCmd.Flags().Bool("json", false, "Output as JSON")
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}
