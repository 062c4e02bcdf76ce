package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/landmass/config"
)

var configRadius float32

var configCmd = &cobra.Command{
	Use:   "config [FILE]",
	Short: "write a prefilled agent-options settings file",
	Long: `Write an agent-options settings file in YAML format, prefilled with
the defaults derived from --radius.

If FILE is not provided, 'landmass.yml' is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.Flags().Float32Var(&configRadius, "radius", 0.5, "canonical agent radius used to derive defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := "landmass.yml"
	if len(args) == 1 {
		path = args[0]
	}

	ok, err := confirmIfExists(path, fmt.Sprintf("file %s already exists, overwrite? [y/N]", path))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("aborted by user")
		return nil
	}

	if err := config.Write(path, config.Default(configRadius)); err != nil {
		return err
	}
	fmt.Printf("agent options written to %s\n", path)
	return nil
}
