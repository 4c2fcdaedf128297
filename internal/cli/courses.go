package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/learnhub/backend/internal/cli/api"
	"github.com/learnhub/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagSearch   string
	flagPage     int
	flagLimit    int
)

var coursesCmd = &cobra.Command{
	Use:   "courses [course-id]",
	Short: "Browse the course catalog",
	Long: `Browse or search published courses, or show one course in detail.

  learnhub courses
  learnhub courses --category Programming
  learnhub courses --search "intro to go"
  learnhub courses 550e8400-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return showCourse(args[0])
		}
		return listCourses()
	},
}

func init() {
	coursesCmd.Flags().StringVar(&flagCategory, "category", "", "Filter by category")
	coursesCmd.Flags().StringVar(&flagSearch, "search", "", "Search in title and description")
	coursesCmd.Flags().IntVar(&flagPage, "page", 0, "Page number")
	coursesCmd.Flags().IntVar(&flagLimit, "limit", 0, "Results per page")
	rootCmd.AddCommand(coursesCmd)
}

func listCourses() error {
	params := url.Values{}
	if flagCategory != "" {
		params.Set("category", flagCategory)
	}
	if flagSearch != "" {
		params.Set("search", flagSearch)
	}
	if flagPage > 0 {
		params.Set("page", strconv.Itoa(flagPage))
	}
	if flagLimit > 0 {
		params.Set("limit", strconv.Itoa(flagLimit))
	}

	var resp api.Response[[]api.Course]
	if err := apiClient.Get("/courses", params, &resp); err != nil {
		return fmt.Errorf("listing courses: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	output.CourseTable(resp.Data)
	if resp.Pagination != nil && resp.Pagination.Pages > 1 {
		fmt.Printf("\nPage %d of %d (%d courses)\n",
			resp.Pagination.Page, resp.Pagination.Pages, resp.Pagination.Total)
	}
	return nil
}

func showCourse(id string) error {
	var resp api.Response[struct {
		Course             api.Course `json:"course"`
		IsEnrolled         bool       `json:"isEnrolled"`
		EnrollmentProgress int        `json:"enrollmentProgress"`
	}]
	if err := apiClient.Get("/courses/"+id, nil, &resp); err != nil {
		return fmt.Errorf("fetching course: %w", err)
	}

	if flagJSON {
		output.JSON(resp.Data)
		return nil
	}

	output.CourseDetail(resp.Data.Course)
	if resp.Data.IsEnrolled {
		fmt.Printf("\nEnrolled, progress %d%%\n", resp.Data.EnrollmentProgress)
	}
	return nil
}
