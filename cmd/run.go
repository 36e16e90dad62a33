package cmd

import (
	"fmt"
	"os"

	"github.com/edfolio/questline/internal/app"
	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/store"
	"github.com/spf13/cobra"
)

// openEngine opens the store and returns an initialized engine plus a
// cleanup func. When the database can't be opened the session degrades
// to in-memory state: everything works, nothing survives exit.
func openEngine(cmd *cobra.Command) (*engine.Engine, func()) {
	cleanup := func() {}

	var stateRepo store.StateRepo
	var eventRepo store.EventRepo

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			stateRepo = st.StateRepo()
			eventRepo = st.EventRepo()
			cleanup = func() { st.Close() }
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: storage unavailable, progress won't be saved:", err)
		mem := store.NewMemoryRepos()
		stateRepo = mem
		eventRepo = mem
	}

	eng := engine.New(stateRepo, eventRepo, engine.DefaultConfig())
	eng.Initialize(cmd.Context())
	return eng, cleanup
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	eng, cleanup := openEngine(cmd)
	defer cleanup()

	return app.Run(app.Options{Engine: eng})
}
