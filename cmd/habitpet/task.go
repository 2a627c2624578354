package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/model"
	"github.com/dori/habitpet/internal/progress"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage missions",
	}

	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskToggleCmd(),
		newTaskRemoveCmd(),
		newTaskClearCmd(),
		newTaskMoveCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a mission",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				task, err := a.AddTask(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added mission %d: %s\n", task.ID, task.Text)
				return nil
			})
		},
	}
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List missions in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				list := a.State().Tasks
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No missions yet.")
					return nil
				}
				for i, task := range list {
					fmt.Fprintf(out, "%2d. %s %s  (id %d)\n", i, task.StatusMark(), task.Text, task.ID)
				}
				fmt.Fprintf(out, "%d/%d done\n", list.Completed(), len(list))
				return nil
			})
		},
	}
}

func newTaskToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   fmt.Sprintf("Flip a mission (worth %d XP)", progress.TaskPoints),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				task, r, err := a.ToggleTask(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s\n", task.StatusMark(), task.Text)
				printReaction(out, a.ActivePet(), r)
				return nil
			})
		},
	}
}

func newTaskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a mission; XP is kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				if err := a.RemoveTask(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed mission %d\n", id)
				return nil
			})
		},
	}
}

func newTaskClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed mission; XP is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				n, err := a.ClearCompleted(yes)
				if err != nil {
					return requireYes(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed mission(s)\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func newTaskMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a mission to another position (0-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return withApp(func(a *app.App) error {
				return a.ReorderTask(from, to)
			})
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mission id %q", s)
	}
	return id, nil
}

// printReaction prints what the pet said and how far it has grown
func printReaction(w io.Writer, pet model.Pet, r app.Reaction) {
	if r.Line != "" {
		fmt.Fprintf(w, "%s: %q\n", pet.Name, r.Line)
	}
	if r.LevelUp > 0 {
		fmt.Fprintf(w, "Level up! %s is now level %d\n", pet.Name, r.LevelUp)
	}
	printProgress(w, pet)
}

func printProgress(w io.Writer, pet model.Pet) {
	if pet.IsMaxLevel() {
		fmt.Fprintf(w, "Lv.MAX  %s\n", xpBar(100))
		return
	}
	pct := progress.Percent(pet.Level, pet.CurrentXP)
	fmt.Fprintf(w, "Lv.%d  %s %d/%d XP\n", pet.Level, xpBar(pct), pet.CurrentXP, progress.LevelCap(pet.Level))
}

func xpBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
