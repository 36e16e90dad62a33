package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var awardCmd = &cobra.Command{
	Use:   "award <source-key> <amount>",
	Short: "Grant XP once for a named source",
	Long: `Grant XP for a source key such as quiz-javascript-basics. Each key
awards at most once; repeating a key is a no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("amount must be an integer, got %q", args[1])
		}

		eng, cleanup := openEngine(cmd)
		defer cleanup()

		res := eng.GrantOnce(cmd.Context(), args[0], amount)
		st := eng.State()
		if !res.Granted {
			if amount <= 0 {
				fmt.Printf("Ignored: amount must be positive. XP unchanged at %d.\n", st.XP)
			} else {
				fmt.Printf("Already awarded for %q. XP unchanged at %d.\n", args[0], st.XP)
			}
			return nil
		}
		fmt.Printf("Granted %d XP for %q. Total: %d XP (level %d).\n",
			amount, args[0], st.XP, st.Level)
		return nil
	},
}
