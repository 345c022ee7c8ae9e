package main

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/zeminka/vmath"
)

type intersectOptions struct {
	aCenter, aSize []float64
	bCenter, bSize []float64
}

func newIntersectCmd(a *app) *cobra.Command {
	opts := &intersectOptions{}
	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Test two axis-aligned boxes for overlap",
		Long: `Boxes are given as center and full dimensions. Touching faces count as
intersecting.

Example:
  zeminka intersect --a-center 0,0,0 --a-size 2,2,2 --b-center 2,0,0 --b-size 2,2,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boxA, err := boxFlags("a", opts.aCenter, opts.aSize)
			if err != nil {
				return err
			}
			boxB, err := boxFlags("b", opts.bCenter, opts.bSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			hit := vmath.Intersects(boxA, boxB)
			fmt.Fprintf(out, "intersects: %t\n", hit)
			if region, ok := vmath.Intersection(boxA, boxB); ok {
				fmt.Fprintf(out, "overlap center: %s size: %s\n",
					formatVec(region.Center), formatVec(region.Dimensions))
				fmt.Fprintf(out, "penetration: %s\n", formatVec(vmath.Penetration(boxA, boxB)))
			}
			a.logger.Debug("intersection tested", zap.Bool("hit", hit))
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&opts.aCenter, "a-center", []float64{0, 0, 0}, "Box A center x,y,z")
	cmd.Flags().Float64SliceVar(&opts.aSize, "a-size", []float64{1, 1, 1}, "Box A dimensions x,y,z")
	cmd.Flags().Float64SliceVar(&opts.bCenter, "b-center", []float64{0, 0, 0}, "Box B center x,y,z")
	cmd.Flags().Float64SliceVar(&opts.bSize, "b-size", []float64{1, 1, 1}, "Box B dimensions x,y,z")
	return cmd
}

func boxFlags(name string, center, size []float64) (vmath.BBox, error) {
	c, err := vec3Flag(name+"-center", center)
	if err != nil {
		return vmath.BBox{}, err
	}
	s, err := vec3Flag(name+"-size", size)
	if err != nil {
		return vmath.BBox{}, err
	}
	box := vmath.NewBBox(c, s)
	if !box.Valid() {
		return vmath.BBox{}, fmt.Errorf("--%s-size must be non-negative and finite", name)
	}
	return box, nil
}

func formatVec(v mgl64.Vec3) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }
	return "(" + f(v[0]) + ", " + f(v[1]) + ", " + f(v[2]) + ")"
}
