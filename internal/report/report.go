// Package report renders the plain-text summary of a classified session.
package report

import (
	"fmt"
	"io"
	"strings"

	"aimscope/internal/models"
)

// Write renders the aggregate report for one classified batch. Both slices
// may be empty; sections for empty partitions are omitted.
func Write(w io.Writer, smooth, jittery []models.AimingEvent) error {
	all := make([]models.AimingEvent, 0, len(smooth)+len(jittery))
	all = append(all, smooth...)
	all = append(all, jittery...)

	var b strings.Builder
	b.WriteString("MOUSE MOVEMENT ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "Total aiming events identified: %d\n", len(all))
	fmt.Fprintf(&b, "Smooth events: %d\n", len(smooth))
	fmt.Fprintf(&b, "Jittery events: %d\n\n", len(jittery))

	if len(all) > 0 {
		writeSection(&b, "OVERALL STATISTICS", all)
	}
	if len(smooth) > 0 {
		writeSection(&b, "SMOOTH EVENTS", smooth)
	}
	if len(jittery) > 0 {
		writeSection(&b, "JITTERY EVENTS", jittery)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, events []models.AimingEvent) {
	var duration, distance, efficiency float64
	for _, ev := range events {
		duration += ev.Duration
		distance += ev.TotalDistance
		efficiency += ev.PathEfficiency
	}
	n := float64(len(events))

	fmt.Fprintf(b, "%s:\n", title)
	fmt.Fprintf(b, "Average duration: %.3fs\n", duration/n)
	fmt.Fprintf(b, "Average distance: %.1f pixels\n", distance/n)
	fmt.Fprintf(b, "Average path efficiency: %.3f\n\n", efficiency/n)
}
