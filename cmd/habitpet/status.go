package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dori/habitpet/internal/app"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active pet and mission count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				out := cmd.OutOrStdout()
				pet := a.ActivePet()
				list := a.State().Tasks

				fmt.Fprintf(out, "%s (%s)\n", pet.Name, pet.ThemeID)
				printProgress(out, pet)
				fmt.Fprintf(out, "Missions: %d/%d done\n", list.Completed(), len(list))
				if level, _, ok := pet.EffectiveImage(); ok {
					fmt.Fprintf(out, "Artwork: level %d slot\n", level)
				}
				return nil
			})
		},
	}
}

func newUpdateCmd() *cobra.Command {
	var ack bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer release is out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				out := cmd.OutOrStdout()
				ctx, cancel := context.WithTimeout(context.Background(), a.Config.UpdateTimeout)
				defer cancel()

				notice, ok := a.CheckForUpdate(ctx)
				if !ok {
					fmt.Fprintf(out, "habitpet v%s is up to date\n", version)
					return nil
				}
				fmt.Fprintf(out, "Version %s is out (you have v%s)\n", notice.Version, version)
				if notice.Message != "" {
					fmt.Fprintln(out, notice.Message)
				}
				fmt.Fprintln(out, a.Config.DistributionURL)
				if ack {
					return a.AcknowledgeUpdate(notice.Version)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "Stop reminding about this version")
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every pet and mission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				if err := a.Reset(yes); err != nil {
					return requireYes(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Everything was reset")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
