package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alcove-sh/alcove/pkg/maintenance"
	"github.com/alcove-sh/alcove/pkg/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store locations, counts and janitor state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	page := app.sessions.List(session.ListOptions{Limit: 1})

	fmt.Printf("Alcove %s\n\n", version)
	fmt.Printf("Session dir:  %s\n", app.sessions.Dir())
	fmt.Printf("Sessions:     %d\n", page.Total)
	fmt.Printf("Alias file:   %s\n", app.cfg.Aliases.Path)
	fmt.Printf("Aliases:      %d\n", app.aliases.Count())
	fmt.Printf("Cache:        %v\n", app.cfg.Sessions.Cache)

	if !app.cfg.Maintenance.Enabled {
		fmt.Println("Janitor:      disabled")
		return nil
	}

	janitor, err := maintenance.NewJanitor(app.aliases, app.sessions, app.cfg.Maintenance.Schedule)
	if err != nil {
		return err
	}
	stats := janitor.Snapshot()
	fmt.Printf("Janitor:      schedule %s, next run %s\n",
		stats.Schedule, stats.NextRun.Format("2006-01-02 15:04:05"))
	if len(stats.Orphans) > 0 {
		fmt.Printf("Orphans:      %d pending removal\n", len(stats.Orphans))
	}
	return nil
}
