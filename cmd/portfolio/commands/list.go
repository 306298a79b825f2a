package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/portfolio-console/console/internal/portfolio/views"
	"github.com/portfolio-console/console/internal/printer"
)

const descriptionWidth = 48

var searchTerm string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List portfolio projects",
	Long: `List portfolio projects in API order.

--search keeps projects whose title or description contains the term,
ignoring case.`,
	Args: cobra.NoArgs,
	RunE: runProjects,
}

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "List work experience with period and tenure",
	Long: `List work experience entries with their period, tenure and status.

--search keeps entries whose position, company or description contains the
term, ignoring case.`,
	Args: cobra.NoArgs,
	RunE: runExperience,
}

func init() {
	projectsCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Filter by title or description")
	experienceCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Filter by position, company or description")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(experienceCmd)
}

type projectRow struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

type experienceRow struct {
	ID          int64  `json:"id" yaml:"id"`
	Position    string `json:"position" yaml:"position"`
	Company     string `json:"company" yaml:"company"`
	Description string `json:"description" yaml:"description"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Period      string `json:"period" yaml:"period"`
	Tenure      string `json:"tenure" yaml:"tenure"`
	Status      string `json:"status" yaml:"status"`
}

func runProjects(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	st, base, err := openStore()
	if err != nil {
		return err
	}
	if err := loadCollections(cmd, st, base, "projects"); err != nil {
		return err
	}
	st.SetSearch(searchTerm)
	vm := views.Build(st.Snapshot(), st.Now())

	rows := make([]projectRow, 0, len(vm.Projects))
	for _, p := range vm.Projects {
		rows = append(rows, projectRow{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Link:        p.Link,
			Image:       p.Image,
		})
	}

	return render(rows, "No projects found.\n",
		[]string{"ID", "TITLE", "LINK", "DESCRIPTION"},
		func(r projectRow) []string {
			return []string{strconv.FormatInt(r.ID, 10), r.Title, orDash(r.Link), truncate(r.Description, descriptionWidth)}
		})
}

func runExperience(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	st, base, err := openStore()
	if err != nil {
		return err
	}
	if err := loadCollections(cmd, st, base, "experience"); err != nil {
		return err
	}
	st.SetSearch(searchTerm)
	vm := views.Build(st.Snapshot(), st.Now())

	rows := make([]experienceRow, 0, len(vm.Experience))
	for _, e := range vm.Experience {
		row := experienceRow{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Description: e.Description,
			StartDate:   e.StartDate.String(),
			Period:      e.Period,
			Tenure:      e.Label,
			Status:      e.Status,
		}
		if e.EndDate != nil {
			row.EndDate = e.EndDate.String()
		}
		rows = append(rows, row)
	}

	return render(rows, "No experience found.\n",
		[]string{"ID", "POSITION", "COMPANY", "PERIOD", "TENURE", "STATUS"},
		func(r experienceRow) []string {
			return []string{strconv.FormatInt(r.ID, 10), r.Position, r.Company, r.Period, r.Tenure, r.Status}
		})
}

// render prints rows as a table, or encodes them for json and yaml output.
func render[T any](rows []T, empty string, header []string, cells func(T) []string) error {
	if outputFormat != formatTable {
		return printer.Encode(outputFormat, rows)
	}
	if len(rows) == 0 {
		printer.Info(empty)
		return nil
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, cells(r))
	}
	printer.Table(header, table)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
