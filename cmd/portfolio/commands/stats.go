package commands

import (
	"github.com/spf13/cobra"

	"github.com/portfolio-console/console/internal/portfolio/views"
	"github.com/portfolio-console/console/internal/printer"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the statistics panel",
	Long: `Show the project count, experience count, current roles and the
total years of experience summed over all entries.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	st, base, err := openStore()
	if err != nil {
		return err
	}
	if err := loadCollections(cmd, st, base, "projects", "experience"); err != nil {
		return err
	}

	snap := st.Snapshot()
	stats := views.ComputeStats(snap.Projects, snap.Experience, st.Now())

	if outputFormat != formatTable {
		return printer.Encode(outputFormat, stats)
	}
	printer.Info("Projects:            %d\n", stats.ProjectCount)
	printer.Info("Experience entries:  %d\n", stats.ExperienceCount)
	printer.Info("Current roles:       %d\n", stats.CurrentRoleCount)
	printer.Info("Years of experience: %d\n", stats.TotalYears)
	return nil
}
