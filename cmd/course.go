/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a course",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		instructor, _ := cmd.Flags().GetString("instructor")
		schedule, _ := cmd.Flags().GetString("schedule")
		location, _ := cmd.Flags().GetString("location")
		description, _ := cmd.Flags().GetString("description")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		course, err := c.Courses.Create(cmd.Context(), c.Config.User.Owner, &entity.Course{
			Name:        strings.Join(args, " "),
			Color:       color,
			Instructor:  instructor,
			Schedule:    schedule,
			Location:    location,
			Description: description,
		})
		if err != nil {
			return err
		}
		cmd.Printf("created course %s (%s)\n", course.Name, course.ID)
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		includeArchived, _ := cmd.Flags().GetBool("archived")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		courses, err := c.Courses.List(cmd.Context(), c.Config.User.Owner, includeArchived)
		if err != nil {
			return err
		}
		rows := lo.Map(courses, func(course entity.Course, _ int) []string {
			state := ""
			if course.Archived {
				state = "archived"
			}
			return []string{course.ID, course.Name, course.Instructor, course.Schedule, state}
		})
		renderTable(cmd.OutOrStdout(), []string{"ID", "NAME", "INSTRUCTOR", "SCHEDULE", "STATE"}, rows)
		return nil
	},
}

var courseArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Archive a course, or restore it with --undo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		course, err := c.Courses.Archive(cmd.Context(), args[0], !undo)
		if err != nil {
			return err
		}
		if course.Archived {
			cmd.Printf("archived course %s\n", course.Name)
		} else {
			cmd.Printf("restored course %s\n", course.Name)
		}
		return nil
	},
}

var courseDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a course with its units, notes, flashcards and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Courses.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted course %s\n", args[0])
		return nil
	},
}

var courseGradeCmd = &cobra.Command{
	Use:   "grade ID",
	Short: "Show the running grade of a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := c.Tasks.GradeSummary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pct := "n/a"
		if summary.Percentage != nil {
			pct = grade.FormatPercentage(*summary.Percentage)
		}
		cmd.Printf("grade: %s %s (%d graded tasks)\n", pct, colorLetter(summary.Letter), summary.Graded)
		if summary.Weight.Overflow {
			cmd.Println(warnStyle.Render(fmt.Sprintf("warning: task weights add up to %s, more than 100%%", grade.FormatPercentage(summary.Weight.Total))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(courseCmd)
	courseCmd.AddCommand(courseAddCmd, courseListCmd, courseArchiveCmd, courseDeleteCmd, courseGradeCmd)

	courseAddCmd.Flags().String("color", entity.DefaultCourseColor, "color tag")
	courseAddCmd.Flags().String("instructor", "", "instructor name")
	courseAddCmd.Flags().String("schedule", "", "meeting schedule, e.g. \"Mon/Wed 10:00\"")
	courseAddCmd.Flags().String("location", "", "room or link")
	courseAddCmd.Flags().String("description", "", "free-form description")

	courseListCmd.Flags().Bool("archived", false, "include archived courses")
	courseArchiveCmd.Flags().Bool("undo", false, "restore an archived course")
}
