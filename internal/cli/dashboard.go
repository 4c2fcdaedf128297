package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/learnhub/backend/internal/cli/api"
	"github.com/learnhub/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagCreator bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your learner or creator dashboard",
	Long: `Show your dashboard. Learners see their enrollments and progress;
pass --creator to see your published courses and earnings instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if flagCreator {
			return showCreatorDashboard()
		}
		return showLearnerDashboard()
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&flagCreator, "creator", false, "Show the creator dashboard")
	rootCmd.AddCommand(dashboardCmd)
}

func showCreatorDashboard() error {
	var resp api.Response[api.CreatorDashboard]
	if err := apiClient.Get("/dashboard/creator", nil, &resp); err != nil {
		return fmt.Errorf("fetching creator dashboard: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	stats := resp.Data.Stats
	fmt.Printf("Courses: %d   Students: %d   Earnings: $%.2f   Rating: %.1f\n\n",
		stats.TotalCourses, stats.TotalStudents, stats.TotalEarnings, stats.AverageRating)
	output.CourseTable(resp.Data.Courses)
	return nil
}

func showLearnerDashboard() error {
	var resp api.Response[api.LearnerDashboard]
	if err := apiClient.Get("/dashboard/learner", nil, &resp); err != nil {
		return fmt.Errorf("fetching learner dashboard: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	stats := resp.Data.Stats
	fmt.Printf("Enrolled: %d   Completed: %d   Hours: %d   Certificates: %d\n",
		stats.TotalCourses, stats.CompletedCourses, stats.TotalHours, stats.Certificates)

	if len(resp.Data.Courses) == 0 {
		fmt.Println("\nNo enrollments yet.")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE\tINSTRUCTOR\tPROGRESS\tENROLLED")
	for _, e := range resp.Data.Courses {
		title, instructor := "-", "-"
		if e.Course != nil {
			title = e.Course.Title
			if e.Course.Instructor != nil {
				instructor = e.Course.Instructor.Name
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\n",
			title, instructor, e.Progress, output.RelativeTime(e.EnrolledAt))
	}
	w.Flush()
	return nil
}
