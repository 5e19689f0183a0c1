package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cory-johannsen/tdnd/internal/scenario"
)

// writeReport prints one scenario's attacks and final combatant state as
// aligned columns.
func writeReport(out io.Writer, r *scenario.Report) error {
	fmt.Fprintf(out, "== %s: %d hits, %d misses, %d skipped ==\n",
		r.Scenario, r.Hits(), r.Misses(), r.SkippedCount())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ATTACKER\tTARGET\tROLL\tTOTAL\tAC\tRESULT\tDAMAGE")
	for _, a := range r.Attacks {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			a.AttackerID, a.TargetID, a.Roll,
			orDash(a.Skipped(), a.AttackTotal), orDash(a.Skipped(), a.TargetAC),
			outcome(a), orDash(a.Skipped() || !a.Hit, a.DamageDealt))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMBATANT\tRACE\tCLASS\tLEVEL\tXP\tHP\tAC\tSTATUS")
	for _, c := range r.Combatants {
		status := "alive"
		if c.Dead {
			status = "dead"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d/%d\t%d\t%s\n",
			c.Name, c.Race, c.Class, c.Level, c.Experience,
			c.HitPoints-c.Damage, c.HitPoints, c.ArmorClass, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out)
	return err
}

func outcome(a scenario.AttackRecord) string {
	var parts []string
	switch {
	case a.Skipped():
		return "skipped (" + a.SkipReason + ")"
	case a.Critical && a.Hit:
		parts = append(parts, "critical")
	case a.Hit:
		parts = append(parts, "hit")
	default:
		parts = append(parts, "miss")
	}
	if a.FlatFooted {
		parts = append(parts, "flat-footed")
	}
	if a.Scripted {
		parts = append(parts, "scripted")
	}
	if a.Hit && a.TargetDead {
		parts = append(parts, "kill")
	}
	return strings.Join(parts, ", ")
}

func orDash(blank bool, v int) string {
	if blank {
		return "-"
	}
	return fmt.Sprint(v)
}
