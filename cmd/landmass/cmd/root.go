package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when landmass is called without any
// subcommands, mirroring cmd/recast/cmd's RootCmd/Execute split between a
// thin main and this package's cobra tree.
var RootCmd = &cobra.Command{
	Use:   "landmass",
	Short: "validate, serialize and simulate multi-island nav meshes",
	Long: `landmass is the command-line companion to the landmass engine:
	- validate level geometry (OBJ) into a landmass nav mesh,
	- save/inspect nav meshes in landmass's binary format,
	- write a prefilled agent-options settings file (YAML),
	- run a scene of islands and agents through a fixed number of ticks.`,
}

// Execute runs RootCmd. It is called once by main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
