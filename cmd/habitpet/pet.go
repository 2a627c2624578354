package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dori/habitpet/internal/app"
	"github.com/dori/habitpet/internal/model"
)

func newPetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pet",
		Aliases: []string{"p"},
		Short:   "Manage the pet library",
	}

	cmd.AddCommand(
		newPetListCmd(),
		newPetAdoptCmd(),
		newPetSwitchCmd(),
		newPetRemoveCmd(),
		newPetRenameCmd(),
		newPetThemeCmd(),
		newPetArtCmd(),
		newPetLinesCmd(),
		newPetExportCmd(),
		newPetImportCmd(),
	)
	return cmd
}

func newPetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every pet",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				roster := a.State().Roster
				out := cmd.OutOrStdout()
				for _, pet := range roster.Pets {
					marker := " "
					if pet.ID == roster.ActiveID {
						marker = "*"
					}
					level := strconv.Itoa(pet.Level)
					if pet.IsMaxLevel() {
						level = "MAX"
					}
					fmt.Fprintf(out, "%s %-20s Lv.%-3s %-8s %s\n", marker, pet.Name, level, pet.ThemeID, pet.ID)
				}
				return nil
			})
		},
	}
}

func newPetAdoptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adopt",
		Short: "Adopt a new pet and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				pet, r := a.AdoptPet()
				fmt.Fprintf(cmd.OutOrStdout(), "Adopted %s (%s)\n", pet.Name, pet.ID)
				printReaction(cmd.OutOrStdout(), pet, r)
				return nil
			})
		},
	}
}

func newPetSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Make another pet active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				pet, r, err := a.SwitchPet(args[0])
				if err != nil {
					return err
				}
				printReaction(cmd.OutOrStdout(), pet, r)
				return nil
			})
		},
	}
}

func newPetRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Say goodbye to a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				if err := a.DeletePet(args[0], yes); err != nil {
					return requireYes(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Now caring for %s\n", a.ActivePet().Name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func newPetRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the active pet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.SetName(strings.Join(args, " "))
			})
		},
	}
}

func newPetThemeCmd() *cobra.Command {
	ids := make([]string, 0, len(model.ThemeIDs()))
	for _, id := range model.ThemeIDs() {
		ids = append(ids, string(id))
	}

	return &cobra.Command{
		Use:       "theme <id>",
		Short:     "Set the active pet's palette (" + strings.Join(ids, ", ") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: ids,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				return a.SetTheme(model.ThemeID(args[0]))
			})
		},
	}
}

func newPetArtCmd() *cobra.Command {
	var clearSlot bool

	cmd := &cobra.Command{
		Use:   "art <level> [image]",
		Short: "Set or clear the artwork shown from a level on",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q", args[0])
			}
			if !clearSlot && len(args) < 2 {
				return fmt.Errorf("an image file is required unless --clear is set")
			}
			return withApp(func(a *app.App) error {
				if clearSlot {
					return a.ClearArtwork(level)
				}
				return a.SetArtworkFromFile(level, args[1])
			})
		},
	}

	cmd.Flags().BoolVar(&clearSlot, "clear", false, "Clear the slot instead")
	return cmd
}

func newPetLinesCmd() *cobra.Command {
	moods := make([]string, 0, len(model.Moods()))
	for _, m := range model.Moods() {
		moods = append(moods, string(m))
	}

	return &cobra.Command{
		Use:       "lines <mood> <file|->",
		Short:     "Replace the active pet's lines for a mood (" + strings.Join(moods, ", ") + "), one per line",
		Args:      cobra.ExactArgs(2),
		ValidArgs: moods,
		RunE: func(cmd *cobra.Command, args []string) error {
			mood, err := model.ParseMood(args[0])
			if err != nil {
				return err
			}
			text, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				return a.SetDialogueText(mood, text)
			})
		},
	}
}

func newPetExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a pet as JSON (the active pet by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return withApp(func(a *app.App) error {
				if output != "" {
					if err := a.ExportPetFile(id, output); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
					return nil
				}
				data, err := a.ExportPet(id)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newPetImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Add a pet from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withApp(func(a *app.App) error {
				pet, err := a.ImportPet([]byte(text))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", pet.Name, pet.ID)
				return nil
			})
		},
	}
}

// readInput reads a whole file, or stdin when path is "-"
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
