package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/landmass/codec"
	"github.com/arl/landmass/navmesh"
)

var buildCmd = &cobra.Command{
	Use:   "build-island INPUT.obj OUTPUT",
	Short: "validate an OBJ mesh into a landmass island nav mesh",
	Long: `Build an island nav mesh from level geometry in OBJ.

The input polygon soup is validated (connectivity, convexity, region
labeling) and the result is written to OUTPUT in landmass's binary
format, readable back with 'landmass infos' or codec.ReadMesh.`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	raw, err := loadRawMesh(input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}

	mesh, err := navmesh.Validate(raw)
	if err != nil {
		return fmt.Errorf("validating %s: %w", input, err)
	}

	ok, err := confirmIfExists(output, fmt.Sprintf("file %s already exists, overwrite? [y/N]", output))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("aborted by user")
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()

	if err := codec.WriteMesh(f, mesh); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("%s: %d vertices, %d polygons, %d regions\n", output, len(mesh.Vertices), len(mesh.Polygons), mesh.NumRegions)
	return nil
}
