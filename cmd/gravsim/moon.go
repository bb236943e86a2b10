package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/lunar"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	moonDays    float64
	moonPeriod  float64
	moonAnimate bool
	moonCycle   int
	moonTable   bool
)

func newMoonCmd() *cobra.Command {
	moonCmd := &cobra.Command{
		Use:   "moon",
		Short: "show the lunar phase for a number of days since new moon",
		Args:  cobra.NoArgs,
		RunE:  showMoon,
	}
	moonCmd.Flags().Float64Var(&moonDays, "days", 0, "days since new moon (prompted when unset)")
	moonCmd.Flags().Float64Var(&moonPeriod, "period", lunar.DefaultPeriod, "length of the lunar cycle in days")
	moonCmd.Flags().BoolVar(&moonAnimate, "animate", false, "animate the cycle")
	moonCmd.Flags().IntVar(&moonCycle, "cycle", 30, "days in the animated cycle or table")
	moonCmd.Flags().BoolVar(&moonTable, "table", false, "print one row per day of the cycle")
	return moonCmd
}

func showMoon(cmd *cobra.Command, args []string) error {
	if !(moonPeriod > 0) || math.IsInf(moonPeriod, 0) {
		return fmt.Errorf("period must be positive and finite, got %g", moonPeriod)
	}
	if moonCycle < 0 {
		return fmt.Errorf("cycle must be non-negative, got %d", moonCycle)
	}
	out := cmd.OutOrStdout()

	switch {
	case moonAnimate:
		_, err := tea.NewProgram(viz.NewMoonModel(moonPeriod, 0.25, float64(moonCycle))).Run()
		return err
	case moonTable:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tANGLE\tPHASE\tLIT")
		for _, d := range lunar.Cycle(moonCycle, moonPeriod) {
			fmt.Fprintf(w, "%g\t%.1f\t%s\t%.0f%%\n", d.Day, d.Angle, d.Phase, d.Fraction*100)
		}
		return w.Flush()
	}

	if !cmd.Flags().Changed("days") {
		fmt.Fprint(out, "Enter the number of days since new moon: ")
		if _, err := fmt.Fscan(cmd.InOrStdin(), &moonDays); err != nil {
			return fmt.Errorf("read days: %w", err)
		}
	}

	if math.IsNaN(moonDays) || math.IsInf(moonDays, 0) {
		return fmt.Errorf("days must be finite, got %g", moonDays)
	}

	angle := lunar.TurnAngle(moonDays, moonPeriod)
	fmt.Fprint(out, viz.RenderMoon(angle, 24, 12))
	fmt.Fprintf(out, "\nday %g of %g: %s\n", moonDays, moonPeriod, lunar.PhaseName(angle))
	fmt.Fprintf(out, "angle %.1f°, %.0f%% lit, dark side %s, terminator %s\n",
		angle, lunar.IlluminatedFraction(angle)*100, lunar.DarkSide(angle), lunar.TerminatorSide(angle))
	return nil
}
