package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/portfolio-console/console/internal/portfolio/store"
	"github.com/portfolio-console/console/internal/printer"
)

const (
	confirmDeleteProject    = "¿Estás seguro de que quieres eliminar este proyecto?"
	confirmDeleteExperience = "¿Estás seguro de que quieres eliminar esta experiencia?"
)

var assumeYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project or an experience entry",
	Long: `Delete a record from the portfolio API.

The command asks for confirmation unless --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "project <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args[0], confirmDeleteProject, (*store.Store).DeleteProject)
	},
}

var deleteExperienceCmd = &cobra.Command{
	Use:   "experience <id>",
	Short: "Delete an experience entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args[0], confirmDeleteExperience, (*store.Store).DeleteExperience)
	},
}

func init() {
	deleteCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	deleteCmd.AddCommand(deleteProjectCmd)
	deleteCmd.AddCommand(deleteExperienceCmd)
	rootCmd.AddCommand(deleteCmd)
}

type deleteFunc func(*store.Store, context.Context, int64) error

func runDelete(cmd *cobra.Command, rawID, prompt string, del deleteFunc) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return printer.Error(
			fmt.Sprintf("invalid id '%s'", rawID),
			"Record ids are positive integers.",
			[]string{"List ids first:\n  portfolio projects\n  portfolio experience"},
		)
	}

	if !assumeYes {
		ok, err := confirm(cmd.InOrStdin(), prompt)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			printer.Warning("Deletion cancelled\n")
			return nil
		}
	}

	st, base, err := openStore()
	if err != nil {
		return err
	}

	if err := del(st, cmd.Context(), id); err != nil {
		return printer.Error(
			st.Snapshot().UI.ErrorMessage,
			fmt.Sprintf("Error: %v", err),
			[]string{fmt.Sprintf("Check that record %d exists at %s", id, base)},
		)
	}

	printer.Success("%s\n", st.Snapshot().UI.SuccessMessage)
	return nil
}

// confirm prints the prompt and reads a yes/no answer. Anything other than
// an explicit yes declines.
func confirm(in io.Reader, prompt string) (bool, error) {
	printer.Info("%s [s/N]: ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
