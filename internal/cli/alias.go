package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage session aliases",
	Long:  `Create, list, rename and remove named aliases pointing at session files.`,
}

var aliasSetCmd = &cobra.Command{
	Use:   "set <name> <session> [title]",
	Short: "Create or update an alias",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runAliasSet,
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List aliases, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAliasList,
}

var aliasRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove an alias",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasRm,
}

var aliasRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename an alias",
	Args:  cobra.ExactArgs(2),
	RunE:  runAliasRename,
}

var aliasTitleCmd = &cobra.Command{
	Use:   "title <name> [title]",
	Short: "Set or clear an alias title",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAliasTitle,
}

var aliasCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove aliases whose session file is gone",
	Args:  cobra.NoArgs,
	RunE:  runAliasCleanup,
}

var (
	aliasSearch string
	aliasLimit  float64
)

func init() {
	aliasListCmd.Flags().StringVar(&aliasSearch, "search", "", "filter by name or title substring")
	aliasListCmd.Flags().Float64Var(&aliasLimit, "limit", 0, "maximum entries to show")

	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasRmCmd)
	aliasCmd.AddCommand(aliasRenameCmd)
	aliasCmd.AddCommand(aliasTitleCmd)
	aliasCmd.AddCommand(aliasCleanupCmd)
	rootCmd.AddCommand(aliasCmd)
}

func runAliasSet(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	title := ""
	if len(args) == 3 {
		title = args[2]
	}

	// Bare session ids are resolved against the repository first.
	sessionPath := args[1]
	if rec := app.sessions.FindByID(sessionPath, false); rec != nil {
		sessionPath = rec.Filename
	}

	res, err := app.aliases.Set(args[0], sessionPath, title)
	if err != nil {
		return err
	}

	if res.IsNew {
		fmt.Printf("Created alias %q -> %s\n", res.Alias, res.SessionPath)
	} else {
		fmt.Printf("Updated alias %q -> %s\n", res.Alias, res.SessionPath)
	}
	return nil
}

func runAliasList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	limit := 0
	if cmd.Flags().Changed("limit") {
		limit = coercePositive(aliasLimit)
	}

	entries := app.aliases.List(aliasSearch, limit)
	if len(entries) == 0 {
		fmt.Println("No aliases found")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%-24s %s", e.Name, e.SessionPath)
		if e.Title != nil {
			line += fmt.Sprintf("  (%s)", *e.Title)
		}
		fmt.Println(line)
	}
	return nil
}

func runAliasRm(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	sessionPath, err := app.aliases.Delete(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Removed alias %q (was %s)\n", args[0], sessionPath)
	return nil
}

func runAliasRename(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	res, err := app.aliases.Rename(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Renamed %q to %q (-> %s)\n", res.OldAlias, res.NewAlias, res.SessionPath)
	return nil
}

func runAliasTitle(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	title := ""
	if len(args) == 2 {
		title = args[1]
	}

	stored, err := app.aliases.UpdateTitle(args[0], title)
	if err != nil {
		return err
	}
	if stored == nil {
		fmt.Printf("Cleared title of %q\n", args[0])
	} else {
		fmt.Printf("Set title of %q to %q\n", args[0], *stored)
	}
	return nil
}

func runAliasCleanup(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.close()

	res, err := app.aliases.CleanupOrphans(app.sessions.Exists)
	if err != nil {
		return err
	}

	fmt.Printf("Checked %d aliases, removed %d\n", res.TotalChecked, res.Removed)
	for _, name := range res.RemovedAliases {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func coercePositive(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
