package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alcove-sh/alcove/pkg/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse and edit session files",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id-or-filename>",
	Short: "Show one session with its parsed metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new [content]",
	Short: "Create a session file for today",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsNew,
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <id-or-filename>",
	Short: "Delete a session file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRm,
}

var (
	sessionsLimit  float64
	sessionsOffset float64
	sessionsDate   string
	sessionsSearch string
)

func init() {
	sessionsListCmd.Flags().Float64Var(&sessionsLimit, "limit", float64(session.DefaultLimit), "page size")
	sessionsListCmd.Flags().Float64Var(&sessionsOffset, "offset", 0, "entries to skip")
	sessionsListCmd.Flags().StringVar(&sessionsDate, "date", "", "only sessions from this YYYY-MM-DD date")
	sessionsListCmd.Flags().StringVar(&sessionsSearch, "search", "", "filter by filename or id substring")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsNewCmd)
	sessionsCmd.AddCommand(sessionsRmCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	page := app.sessions.List(session.ListOptions{
		Limit:  session.CoerceLimit(sessionsLimit),
		Offset: session.CoerceOffset(sessionsOffset),
		Date:   sessionsDate,
		Search: sessionsSearch,
	})

	if len(page.Sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	for _, rec := range page.Sessions {
		marker := " "
		if !rec.HasContent {
			marker = "-"
		}
		fmt.Printf("%s %-44s %8d  %s\n",
			marker, rec.Filename, rec.Size, rec.ModifiedTime.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Showing %d of %d (offset %d)", len(page.Sessions), page.Total, page.Offset)
	if page.HasMore {
		fmt.Print(", more available")
	}
	fmt.Println()
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	rec := app.sessions.FindByID(args[0], true)
	if rec == nil {
		return fmt.Errorf("session %q not found", args[0])
	}

	fmt.Printf("File:  %s\n", rec.Filename)
	fmt.Printf("Date:  %s\n", rec.Date)
	fmt.Printf("ID:    %s\n", rec.ShortID)
	fmt.Printf("Size:  %d bytes\n", rec.Size)
	if rec.Metadata != nil && rec.Metadata.Title != "" {
		fmt.Printf("Title: %s\n", rec.Metadata.Title)
	}
	if rec.Stats != nil {
		fmt.Printf("Items: %d total, %d done, %d in progress\n",
			rec.Stats.TotalItems, rec.Stats.CompletedItems, rec.Stats.InProgressItems)
	}

	if aliases := app.aliases.ForSession(rec.Filename); len(aliases) > 0 {
		fmt.Print("Aliases:")
		for _, a := range aliases {
			fmt.Printf(" %s", a.Name)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Print(rec.Content)
	return nil
}

func runSessionsNew(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	content := ""
	if len(args) == 1 {
		content = args[0]
	}

	rec := app.sessions.Create(content)
	if rec == nil {
		return fmt.Errorf("failed to create session")
	}
	fmt.Printf("Created %s\n", rec.Filename)
	return nil
}

func runSessionsRm(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	rec := app.sessions.FindByID(args[0], false)
	if rec == nil {
		return fmt.Errorf("session %q not found", args[0])
	}
	if !app.sessions.Delete(rec.Filename) {
		return fmt.Errorf("failed to delete %s", rec.Filename)
	}

	fmt.Printf("Deleted %s\n", rec.Filename)

	// Sweep aliases that pointed at it.
	if res, err := app.aliases.CleanupOrphans(app.sessions.Exists); err == nil && res.Removed > 0 {
		fmt.Printf("Removed %d orphaned alias(es)\n", res.Removed)
	}
	return nil
}
