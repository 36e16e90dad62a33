package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "List or complete lessons",
}

var lessonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons and their completion status",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup := openEngine(cmd)
		defer cleanup()

		st := eng.State()
		cfg := eng.Config()

		// Configured lessons first, then any extras found in storage.
		keys := append([]string(nil), cfg.LessonKeys...)
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			seen[k] = true
		}
		var extras []string
		for k := range st.Lessons {
			if !seen[k] {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		keys = append(keys, extras...)

		for _, k := range keys {
			status := "Locked"
			if st.Lessons[k].Completed {
				status = "Completed"
			}
			fmt.Printf("  %-20s %s\n", k, status)
		}
		return nil
	},
}

var lessonCompleteCmd = &cobra.Command{
	Use:   "complete <lesson-key>",
	Short: "Mark a lesson complete and claim its XP bonus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup := openEngine(cmd)
		defer cleanup()

		res := eng.CompleteLesson(cmd.Context(), args[0])
		switch {
		case res.Unknown:
			return fmt.Errorf("unknown lesson %q", args[0])
		case res.Already:
			fmt.Printf("%s was already completed.\n", args[0])
		default:
			st := eng.State()
			fmt.Printf("Completed %s! +%d XP. Total: %d XP (level %d).\n",
				args[0], eng.Config().CompletionBonus, st.XP, st.Level)
		}
		return nil
	},
}

func init() {
	lessonCmd.AddCommand(lessonListCmd)
	lessonCmd.AddCommand(lessonCompleteCmd)
}
