package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/zeminka/physics"
)

type solveOptions struct {
	m1, m2   float64
	v1, v2   []float64
	friction float64
	surface  string
	dt       float64
}

func newSolveCmd(a *app) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Exchange momentum between two bodies",
		Long: `Damps both velocities by friction^dt and exchanges them weighted by mass.

Example:
  zeminka solve --m1 1 --v1 1,0,0 --m2 1 --v2 0,0,0 --friction 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v1, err := vec3Flag("v1", opts.v1)
			if err != nil {
				return err
			}
			v2, err := vec3Flag("v2", opts.v2)
			if err != nil {
				return err
			}

			friction := opts.friction
			if opts.surface != "" {
				s, err := physics.LookupSurface(opts.surface)
				if err != nil {
					return err
				}
				friction = s.Friction
			}

			if err := physics.Resolve(opts.m1, &v1, opts.m2, &v2, friction, opts.dt); err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			a.logger.Debug("momentum exchanged")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "v1' = %s\n", formatVec(v1))
			fmt.Fprintf(out, "v2' = %s\n", formatVec(v2))
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.m1, "m1", 1, "First body mass")
	cmd.Flags().Float64Var(&opts.m2, "m2", 1, "Second body mass")
	cmd.Flags().Float64SliceVar(&opts.v1, "v1", []float64{0, 0, 0}, "First body velocity x,y,z")
	cmd.Flags().Float64SliceVar(&opts.v2, "v2", []float64{0, 0, 0}, "Second body velocity x,y,z")
	cmd.Flags().Float64Var(&opts.friction, "friction", physics.FrictionIce, "Per-second velocity retention (1 ice, 0 ground)")
	cmd.Flags().StringVar(&opts.surface, "surface", "", "Friction preset, overrides --friction ("+strings.Join(physics.SurfaceNames(), ", ")+")")
	cmd.Flags().Float64Var(&opts.dt, "dt", 1.0/60, "Elapsed time in seconds")
	return cmd
}
