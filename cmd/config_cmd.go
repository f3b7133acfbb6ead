package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var configOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current (or default) configuration to a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := mustConfig()
		if err := SaveConfig(c, configOut); err != nil {
			return err
		}
		log.Printf("config written to %s", configOut)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configOut, "out", "o", "qol.yaml", "output path")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
