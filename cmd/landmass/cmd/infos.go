package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arl/landmass/codec"
)

var infosCmd = &cobra.Command{
	Use:   "infos MESHFILE",
	Short: "show information about a built island nav mesh",
	Long: `Read a nav mesh from a binary file produced by 'landmass build-island'
and print its vertex, polygon and region counts, plus its world bounds.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfos,
}

func init() {
	RootCmd.AddCommand(infosCmd)
}

func runInfos(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	mesh, err := codec.ReadMesh(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	fmt.Printf("vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("polygons:  %d\n", len(mesh.Polygons))
	fmt.Printf("regions:   %d\n", mesh.NumRegions)
	fmt.Printf("bounds:    x[%g, %g] y[%g, %g] z[%g, %g]\n",
		mesh.Bounds.Min.X, mesh.Bounds.Max.X,
		mesh.Bounds.Min.Y, mesh.Bounds.Max.Y,
		mesh.Bounds.MinZ, mesh.Bounds.MaxZ)
	if mesh.Height != nil {
		fmt.Printf("height mesh: %d fans\n", len(mesh.Height.Triangles))
	}
	return nil
}
