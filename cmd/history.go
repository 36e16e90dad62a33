package cmd

import (
	"fmt"

	"github.com/edfolio/questline/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent XP awards",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		events, err := st.EventRepo().QueryAwards(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query awards: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No XP awarded yet.")
			return nil
		}

		fmt.Printf("%-20s  %-8s  %-28s  %6s  %8s\n",
			"When", "Kind", "Source", "Amount", "XP After")
		for _, ev := range events {
			fmt.Printf("%-20s  %-8s  %-28s  %+6d  %8d\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Kind, ev.SourceKey, ev.Amount, ev.XPAfter)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of events to show")
}
