package main

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/experiment"
	"github.com/san-kum/lorenz/internal/export"
	"github.com/san-kum/lorenz/internal/sim"
	"github.com/san-kum/lorenz/internal/telemetry"
	"github.com/san-kum/lorenz/internal/viz"
	"github.com/spf13/cobra"
)

// spectrumWindow caps the samples fed to the FFT in analyze.
const spectrumWindow = 1 << 16

func (a *app) benchCmd() *cobra.Command {
	var sizes []int
	var repeat int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time every integrator over a range of trajectory lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if repeat < 1 {
				return fmt.Errorf("%w: repeat must be at least 1", dynamo.ErrInvalidConfig)
			}

			log := a.logger(cmd)
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTEG\tSTEPS\tBEST\tMEAN\tRATE")

			for _, name := range registry.ListIntegrators() {
				integ, err := registry.GetIntegrator(name)
				if err != nil {
					return err
				}
				rec := telemetry.NewRecorder(name)
				s := sim.New(cfg.Field(), integ, sim.WithLogger(log.WithField("integrator", name)), sim.WithObserver(rec))

				for _, n := range sizes {
					best, total := time.Duration(math.MaxInt64), time.Duration(0)
					for r := 0; r < repeat; r++ {
						res, err := s.Run(cmd.Context(), cfg.InitialPoint(), sim.Config{Steps: n, Dt: cfg.Dt})
						if err != nil {
							return err
						}
						best = min(best, res.Elapsed)
						total += res.Elapsed
					}
					mean := total / time.Duration(repeat)
					rate := "-"
					if best > 0 {
						rate = humanize.SIWithDigits(float64(n-1)/best.Seconds(), 2, "steps/s")
					}
					fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\n", name, humanize.Comma(int64(n)), best, mean, rate)
				}

				if a.metrics {
					if err := rec.WriteText(cmd.ErrOrStderr()); err != nil {
						return err
					}
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{1000, 10000, 100000, 500000}, "trajectory lengths to time")
	cmd.Flags().IntVar(&repeat, "repeat", 3, "runs per size")
	return cmd
}

func (a *app) plotCmd() *cobra.Command {
	var axes []string
	var width, height int

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot coordinates against time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSize(width, height); err != nil {
				return err
			}
			idx := make([]int, 0, len(axes))
			for _, name := range axes {
				i, err := viz.AxisIndex(name)
				if err != nil {
					return err
				}
				idx = append(idx, i)
			}

			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			result, err := a.simulate(cmd, cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), viz.PlotAxes(result.Trajectory.Points(), idx, width, height))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&axes, "axes", []string{"x", "y", "z"}, "coordinates to plot")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 10, "plot height")
	return cmd
}

func (a *app) phaseCmd() *cobra.Command {
	var plane string
	var svg bool
	var width, height, maxPoints int
	var rotX, rotY, rotZ, zoom float64

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "draw the attractor on a braille canvas",
		Long:  "Draws a perspective view of the trajectory centred on its bounding box, or a flat portrait when --plane is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSize(width, height); err != nil {
				return err
			}
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			result, err := a.simulate(cmd, cfg)
			if err != nil {
				return err
			}
			points := viz.Downsample(result.Trajectory.Points(), maxPoints)

			if plane != "" {
				if len(plane) != 2 {
					return fmt.Errorf("%w: plane must name two axes, e.g. xz", dynamo.ErrInvalidConfig)
				}
				u, err := viz.AxisIndex(plane[:1])
				if err != nil {
					return err
				}
				v, err := viz.AxisIndex(plane[1:])
				if err != nil {
					return err
				}
				if svg {
					return export.TrajectorySVG(cmd.OutOrStdout(), points, u, v, width*8, height*8, "#00ff88")
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), viz.PhasePortrait(points, u, v, width, height))
				return err
			}

			cam := viz.NewCamera()
			cam.FitBounds(analysis.ComputeBounds(points))
			cam.RotateX(rotX)
			cam.RotateY(rotY)
			cam.RotateZ(rotZ)
			cam.Zoom = zoom

			canvas := viz.NewCanvas(width, height)
			viz.RenderTrajectory(canvas, points, cam)
			if svg {
				return export.CanvasSVG(cmd.OutOrStdout(), canvas, 4)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), canvas.String())
			return err
		},
	}
	cmd.Flags().StringVar(&plane, "plane", "", "project onto two axes instead (e.g. xz)")
	cmd.Flags().BoolVar(&svg, "svg", false, "write SVG to stdout instead of braille")
	cmd.Flags().IntVar(&width, "width", 80, "canvas width in cells")
	cmd.Flags().IntVar(&height, "height", 30, "canvas height in cells")
	cmd.Flags().IntVar(&maxPoints, "max-points", 50000, "points drawn after downsampling")
	cmd.Flags().Float64Var(&rotX, "rot-x", 0, "extra rotation about x (radians)")
	cmd.Flags().Float64Var(&rotY, "rot-y", 0, "extra rotation about y (radians)")
	cmd.Flags().Float64Var(&rotZ, "rot-z", 0, "extra rotation about z (radians)")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")
	return cmd
}

func (a *app) liveCmd() *cobra.Command {
	var perFrame int

	cmd := &cobra.Command{
		Use:   "live",
		Short: "integrate and draw the attractor in real time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
			if err != nil {
				return err
			}

			m := viz.NewLiveModel(cfg.Field(), integ, cfg.InitialPoint(), cfg.Dt, perFrame, "lorenz "+cfg.Integrator)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if lm, ok := final.(viz.LiveModel); ok && lm.Err() != nil {
				return lm.Err()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&perFrame, "steps-per-frame", 4, "integration steps per rendered frame")
	return cmd
}

func (a *app) analyzeCmd() *cobra.Command {
	var lyapSteps, transient int
	var d0 float64

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "attractor statistics: bounds, Lyapunov exponent, Poincaré section, spectrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			result, err := a.simulate(cmd, cfg)
			if err != nil {
				return err
			}
			integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
			if err != nil {
				return err
			}

			points := result.Trajectory.Points()
			bounds := analysis.ComputeBounds(points)
			crossings := analysis.PoincareSection(points, 2, cfg.Params.Rho-1)
			lambda := analysis.LyapunovExponent(cfg.Field(), integ, cfg.InitialPoint(), cfg.Dt, transient, lyapSteps, d0)
			xs := viz.Series(points[len(points)-min(len(points), spectrumWindow):], 0)

			var b strings.Builder
			b.WriteString(viz.HeaderStyle.Render("LORENZ "+strings.ToUpper(cfg.Integrator)) + "\n")
			row := func(label, value string) {
				b.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%-18s", label)) + viz.MetricValue.Render(value) + "\n")
			}
			row("points", humanize.Comma(int64(len(points))))
			row("elapsed", result.Elapsed.String())
			row("bounds min", bounds.Min.String())
			row("bounds max", bounds.Max.String())
			row("centroid", analysis.Centroid(points).String())
			row("radius", fmt.Sprintf("%.4f", bounds.Radius()))
			row("lyapunov", fmt.Sprintf("%.4f", lambda))
			row("section z=ρ-1", humanize.Comma(int64(len(crossings)))+" crossings")
			row("wing switches", humanize.Comma(int64(analysis.LobeSwitches(crossings))))
			row("dominant freq", fmt.Sprintf("%.4f", analysis.DominantFrequency(xs, cfg.Dt)))
			b.WriteString(viz.Subtle.Render(fmt.Sprintf("%-18s", "x(t)")) + viz.Sparkline(viz.Series(viz.Downsample(points, 60), 0), 60) + "\n")

			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
	cmd.Flags().IntVar(&lyapSteps, "lyapunov-steps", 20000, "steps used for the Lyapunov estimate")
	cmd.Flags().IntVar(&transient, "transient", 1000, "steps discarded before the estimate")
	cmd.Flags().Float64Var(&d0, "d0", 1e-8, "initial separation")
	return cmd
}

// divergence summarises how far two trajectories from the same seed drift
// apart.
type divergence struct {
	max        float64
	final      float64
	firstAbove int // first index whose distance exceeds the threshold, -1 if none
}

func measureDivergence(p, q []dynamo.Point3, threshold float64) divergence {
	d := divergence{firstAbove: -1}
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		dist := p[i].Sub(q[i]).Norm()
		d.max = max(d.max, dist)
		if d.firstAbove < 0 && dist > threshold {
			d.firstAbove = i
		}
		d.final = dist
	}
	return d
}

func (a *app) compareCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2]",
		Short: "run two integrators from the same seed and report their divergence",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{"rk4", "euler"}
			copy(names, args)

			base, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}

			results := make([]*sim.Result, len(names))
			for i, name := range names {
				cfg := *base
				cfg.Integrator = name
				if results[i], err = a.simulate(cmd, &cfg); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTEG\tSTEPS\tELAPSED\tFINAL POINT")
			for i, name := range names {
				r := results[i]
				fmt.Fprintf(w, "%s\t%s\t%v\t%v\n", name, humanize.Comma(int64(r.Trajectory.Len())), r.Elapsed, r.Trajectory.Last())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			d := measureDivergence(results[0].Trajectory.Points(), results[1].Trajectory.Points(), threshold)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nmax distance:   %.6f\n", d.max)
			fmt.Fprintf(out, "final distance: %.6f\n", d.final)
			if d.firstAbove >= 0 {
				fmt.Fprintf(out, "exceeds %g at step %s (t = %.2f)\n", threshold, humanize.Comma(int64(d.firstAbove)), float64(d.firstAbove)*base.Dt)
			} else {
				fmt.Fprintf(out, "never exceeds %g\n", threshold)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 1.0, "distance that counts as diverged")
	return cmd
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTEG\tDT\tSTEPS\tSIGMA\tRHO\tBETA")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%g\t%g\t%.6g\n",
					name, p.Integrator, p.Dt, humanize.Comma(int64(p.StepCount())),
					p.Params.Sigma, p.Params.Rho, p.Params.Beta)
			}
			return w.Flush()
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if out != "" {
				return config.Save(out, cfg)
			}
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func (a *app) sweepCmd() *cobra.Command {
	sw := analysis.Sweep{Axis: 2}
	var axis string
	var width, height int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "bifurcation diagram of coordinate maxima over a parameter range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSize(width, height); err != nil {
				return err
			}
			cfg, err := a.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if sw.Axis, err = viz.AxisIndex(axis); err != nil {
				return err
			}
			integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
			if err != nil {
				return err
			}
			sw.X0, sw.Dt = cfg.InitialPoint(), cfg.Dt

			data, err := analysis.BifurcationDiagram(cfg.Field(), integ, sw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s maxima vs %s in [%g, %g]\n", axis, sw.Param, sw.Min, sw.Max)
			fmt.Fprint(out, viz.BifurcationPlot(data, width, height))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tMAXIMA\tMIN\tMAX\n", strings.ToUpper(sw.Param))
			for _, p := range data {
				lo, hi := math.NaN(), math.NaN()
				for i, v := range p.Values {
					if i == 0 {
						lo, hi = v, v
					}
					lo, hi = min(lo, v), max(hi, v)
				}
				fmt.Fprintf(w, "%.3f\t%d\t%.3f\t%.3f\n", p.Param, len(p.Values), lo, hi)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&sw.Param, "param", "rho", "parameter to sweep (sigma, rho, beta)")
	cmd.Flags().Float64Var(&sw.Min, "from", 20, "first parameter value")
	cmd.Flags().Float64Var(&sw.Max, "to", 30, "last parameter value")
	cmd.Flags().IntVar(&sw.Samples, "samples", 40, "parameter values")
	cmd.Flags().IntVar(&sw.Transient, "transient", 2000, "steps discarded per value")
	cmd.Flags().IntVar(&sw.Record, "record", 5000, "steps recorded per value")
	cmd.Flags().StringVar(&axis, "axis", "z", "coordinate whose maxima are recorded")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 20, "plot height")
	return cmd
}

// checkSize rejects plot dimensions below one cell.
func checkSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: width and height must be at least 1, got %dx%d", dynamo.ErrInvalidConfig, width, height)
	}
	return nil
}
