package cmd

import (
	"fmt"
	"strconv"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the states of the directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		dir, dirErr := app.explorer.Directory(cmd.Context())
		if dirErr != nil {
			return dirErr
		}
		for _, state := range dir.States() {
			fmt.Fprintln(cmd.OutOrStdout(), state)
		}
		return nil
	},
}

var parksCmd = &cobra.Command{
	Use:   "parks <state>",
	Short: "List the parks of a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		records, parksErr := app.explorer.ParksForState(cmd.Context(), args[0])
		if parksErr != nil {
			return parksErr
		}
		writeParkList(cmd.OutOrStdout(), args[0], records)
		return nil
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <state> <number>",
	Short: "Search places near the n-th park of a state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("park number %q is not a number", args[1])
		}
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		records, parksErr := app.explorer.ParksForState(cmd.Context(), args[0])
		if parksErr != nil {
			return parksErr
		}
		record, err := selectRecord(records, args[1])
		if err != nil {
			return err
		}
		nearby, nearbyErr := app.explorer.Nearby(cmd.Context(), record)
		if nearbyErr != nil {
			return nearbyErr
		}
		writeNearby(cmd.OutOrStdout(), record.Name, nearby)
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache file path and its number of entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		fileStore, ok := app.store.(*cache.FileStore)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "cache disabled (--no-cache)")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d entries)\n", fileStore.Path(), len(fileStore.Load()))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		fileStore, ok := app.store.(*cache.FileStore)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "cache disabled (--no-cache)")
			return nil
		}
		if clearErr := fileStore.Clear(); clearErr != nil {
			return clearErr
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", fileStore.Path())
		return nil
	},
}
