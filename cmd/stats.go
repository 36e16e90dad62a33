package cmd

import (
	"fmt"
	"strings"

	"github.com/edfolio/questline/internal/ui/components"
	"github.com/edfolio/questline/internal/ui/theme"
	"github.com/edfolio/questline/internal/view"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress at a glance",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup := openEngine(cmd)
		defer cleanup()

		vm := view.Project(eng.State(), eng.Config())

		var b strings.Builder
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Level %d", vm.Level)))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("   %d XP total   ★ %d day streak", vm.TotalXP, vm.Streak)))
		b.WriteString("\n\n")

		b.WriteString(components.Gauge("XP", vm.LevelFraction, 50))
		b.WriteString("\n\n")

		for _, l := range vm.Lessons {
			style := theme.Locked
			if l.Completed {
				style = theme.Unlocked
			}
			b.WriteString(theme.Body.Render(l.Key) + "  " + style.Render(l.Label) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(components.Gauge("Lessons", float64(vm.LessonPercent)/100, 50))
		b.WriteString("\n\n")

		for _, badge := range vm.Badges {
			style := theme.Locked
			if badge.Unlocked {
				style = theme.Unlocked
			}
			b.WriteString(style.Render(badge.Label) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Momentum") + "\n")
		b.WriteString(components.NewBarChart(vm.Momentum, 4).View())

		fmt.Println(b.String())
		return nil
	},
}
