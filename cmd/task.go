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
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/repository"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks and deadlines",
}

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDue, _ := cmd.Flags().GetString("due")
		courseID, _ := cmd.Flags().GetString("course")
		taskType, _ := cmd.Flags().GetString("type")
		rawPriority, _ := cmd.Flags().GetString("priority")
		weight, _ := cmd.Flags().GetFloat64("weight")
		description, _ := cmd.Flags().GetString("description")

		due, err := parseDue(rawDue)
		if err != nil {
			return err
		}
		priority, err := parsePriority(rawPriority)
		if err != nil {
			return err
		}

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		task, err := c.Tasks.Create(cmd.Context(), c.Config.User.Owner, &entity.Task{
			CourseID:    courseID,
			Title:       strings.Join(args, " "),
			Description: description,
			DueDate:     due,
			Type:        entity.ParseTaskType(taskType),
			Priority:    priority,
			Weight:      optionalFloat(cmd.Flags().Changed("weight"), weight),
		})
		if err != nil {
			return err
		}
		cmd.Printf("created task %s (%s), due %s\n", task.Title, task.ID, formatTime(task.DueDate))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered with a CEL expression",
	Example: `  studydesk task list
  studydesk task list --filter 'status == "pending" && priority == 1' --order-by 'due_date desc'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		pageNo, _ := cmd.Flags().GetInt32("page")
		pageSize, _ := cmd.Flags().GetInt32("page-size")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		owner := c.Config.User.Owner
		if filter == "" && orderBy == "" && pageNo == 0 && pageSize == 0 {
			tasks, err := c.Tasks.List(cmd.Context(), owner)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		}

		tasks, total, err := c.Tasks.Filter(cmd.Context(), owner, &repository.ListTaskQuery{
			Pagination:  repository.Pagination{PageNo: pageNo, PageSize: pageSize},
			FilterOrder: repository.FilterOrder{Filter: filter, OrderBy: orderBy},
		})
		if err != nil {
			return err
		}
		printTasks(cmd.OutOrStdout(), tasks)
		cmd.Printf("%d of %d tasks\n", len(tasks), total)
		return nil
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete ID",
	Short: "Mark a task completed, optionally recording its grade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetFloat64("grade")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		task, err := c.Tasks.Complete(cmd.Context(), args[0], optionalFloat(cmd.Flags().Changed("grade"), score))
		if err != nil {
			return err
		}
		cmd.Printf("completed %s\n", task.Title)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Tasks.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted task %s\n", args[0])
		return nil
	},
}

var taskTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show pending tasks due today",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		tasks, err := c.Tasks.Today(cmd.Context(), c.Config.User.Owner)
		if err != nil {
			return err
		}
		printTasks(cmd.OutOrStdout(), tasks)
		return nil
	},
}

var taskWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show pending tasks due in the next seven days",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		tasks, err := c.Tasks.Week(cmd.Context(), c.Config.User.Owner)
		if err != nil {
			return err
		}
		printTasks(cmd.OutOrStdout(), tasks)
		return nil
	},
}

func printTasks(w io.Writer, tasks []entity.Task) {
	rows := lo.Map(tasks, func(t entity.Task, _ int) []string {
		return []string{
			t.ID,
			t.Title,
			t.CourseID,
			string(t.Type),
			priorityName(t.Priority),
			formatTime(t.DueDate),
			formatStatus(t.Status),
			formatOptional(t.Weight),
			formatOptional(t.Grade),
		}
	})
	renderTable(w, []string{"ID", "TITLE", "COURSE", "TYPE", "PRIORITY", "DUE", "STATUS", "WEIGHT", "GRADE"}, rows)
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskCompleteCmd, taskDeleteCmd, taskTodayCmd, taskWeekCmd)

	taskAddCmd.Flags().String("due", "", "due date: 2006-01-02, \"2006-01-02 15:04\" or RFC 3339")
	taskAddCmd.Flags().String("course", "", "course id")
	taskAddCmd.Flags().String("type", string(entity.TaskTypeAssignment), "assignment, exam, quiz, project, reading or other")
	taskAddCmd.Flags().String("priority", "medium", "high, medium or low")
	taskAddCmd.Flags().Float64("weight", 0, "share of the course grade, in percent")
	taskAddCmd.Flags().String("description", "", "free-form description")
	_ = taskAddCmd.MarkFlagRequired("due")

	taskListCmd.Flags().String("filter", "", "CEL filter expression")
	taskListCmd.Flags().String("order-by", "", "comma separated fields, e.g. \"priority, due_date desc\"")
	taskListCmd.Flags().Int32("page", 0, "page number, starting at 1")
	taskListCmd.Flags().Int32("page-size", 0, "page size")

	taskCompleteCmd.Flags().Float64("grade", 0, "score in percent")
}
