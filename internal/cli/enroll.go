package cli

import (
	"fmt"

	"github.com/learnhub/backend/internal/cli/api"
	"github.com/learnhub/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.EnrollResult]
		if err := apiClient.Post("/courses/"+args[0]+"/enroll", nil, &resp); err != nil {
			return fmt.Errorf("enrolling: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		fmt.Println(resp.Data.Message)
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "complete <course-id> <module-id>",
	Short: "Mark a course module as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[struct {
			CourseID string `json:"courseId"`
			Progress int    `json:"progress"`
		}]
		body := map[string]string{"moduleId": args[1]}
		if err := apiClient.Post("/courses/"+args[0]+"/progress", body, &resp); err != nil {
			return fmt.Errorf("recording progress: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		fmt.Printf("Progress: %d%%\n", resp.Data.Progress)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(progressCmd)
}
