package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/learnhub/backend/internal/cli/api"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// CourseTable prints courses as a human-readable table.
func CourseTable(courses []api.Course) {
	if len(courses) == 0 {
		fmt.Println("No courses found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tRATING\tSTUDENTS\tDURATION")

	for _, c := range courses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(c.ID),
			truncate(c.Title, 40),
			c.Category,
			FormatPrice(c.Price, c.IsFree),
			FormatRating(c.AverageRating, c.TotalRatings),
			c.TotalStudents,
			FormatDuration(c.TotalDuration),
		)
	}
	w.Flush()
}

// CourseDetail prints a single course with its modules.
func CourseDetail(c api.Course) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", c.Title)
	fmt.Fprintf(w, "ID:\t%s\n", c.ID)
	fmt.Fprintf(w, "Category:\t%s\n", c.Category)
	if c.Instructor != nil {
		fmt.Fprintf(w, "Instructor:\t%s\n", c.Instructor.Name)
	}
	fmt.Fprintf(w, "Price:\t%s\n", FormatPrice(c.Price, c.IsFree))
	fmt.Fprintf(w, "Rating:\t%s\n", FormatRating(c.AverageRating, c.TotalRatings))
	fmt.Fprintf(w, "Students:\t%d\n", c.TotalStudents)
	fmt.Fprintf(w, "Duration:\t%s\n", FormatDuration(c.TotalDuration))
	fmt.Fprintf(w, "Created:\t%s\n", RelativeTime(c.CreatedAt))
	w.Flush()

	if len(c.Modules) > 0 {
		fmt.Println()
		fmt.Println("Modules:")
		for _, m := range c.Modules {
			fmt.Printf("  %2d. %s (%s)\n", m.Order, m.Title, FormatDuration(m.Duration))
		}
	}

	if c.Description != "" {
		fmt.Println()
		fmt.Println(c.Description)
	}
}

// UserInfo prints the authenticated user's identity.
func UserInfo(u api.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", u.Name)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Role:\t%s\n", u.Role)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}

// FormatPrice renders a course price, marking free courses.
func FormatPrice(price float64, isFree bool) string {
	if isFree || price == 0 {
		return "free"
	}
	return fmt.Sprintf("$%.2f", price)
}

// FormatRating renders "4.5 (12)" or "-" when unrated.
func FormatRating(average float64, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", average, total)
}

// FormatDuration converts minutes to "2h 15m" form.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// RelativeTime renders a timestamp as "3 days ago".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
