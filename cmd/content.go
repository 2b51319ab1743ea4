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
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/entity"
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Manage the units of a course",
}

var unitAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Append a unit to a course",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")
		description, _ := cmd.Flags().GetString("description")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		unit, err := c.Content.CreateUnit(cmd.Context(), c.Config.User.Owner, &entity.Unit{
			CourseID:    courseID,
			Name:        strings.Join(args, " "),
			Description: description,
		})
		if err != nil {
			return err
		}
		cmd.Printf("created unit %d. %s (%s)\n", unit.OrderIndex, unit.Name, unit.ID)
		return nil
	},
}

var unitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the units of a course in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		units, err := c.Content.ListUnits(cmd.Context(), courseID)
		if err != nil {
			return err
		}
		rows := lo.Map(units, func(u entity.Unit, _ int) []string {
			return []string{strconv.Itoa(u.OrderIndex), u.ID, u.Name, u.Description}
		})
		renderTable(cmd.OutOrStdout(), []string{"#", "ID", "NAME", "DESCRIPTION"}, rows)
		return nil
	},
}

var unitDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a unit with its notes and flashcards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Content.DeleteUnit(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted unit %s\n", args[0])
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage unit notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Write a note in a unit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unitID, _ := cmd.Flags().GetString("unit")
		content, _ := cmd.Flags().GetString("content")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		note, err := c.Content.CreateNote(cmd.Context(), c.Config.User.Owner, &entity.Note{
			UnitID:  unitID,
			Title:   strings.Join(args, " "),
			Content: content,
			Tags:    tags,
		})
		if err != nil {
			return err
		}
		cmd.Printf("created note %s (%s)\n", note.Title, note.ID)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes of a course or unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")
		unitID, _ := cmd.Flags().GetString("unit")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		notes, err := c.Content.ListNotes(cmd.Context(), courseID, unitID)
		if err != nil {
			return err
		}
		rows := lo.Map(notes, func(n entity.Note, _ int) []string {
			return []string{n.ID, n.UnitID, n.Title, strings.Join(n.Tags, ", "), formatTime(n.UpdatedAt)}
		})
		renderTable(cmd.OutOrStdout(), []string{"ID", "UNIT", "TITLE", "TAGS", "UPDATED"}, rows)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Content.DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted note %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unitCmd, noteCmd)
	unitCmd.AddCommand(unitAddCmd, unitListCmd, unitDeleteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteDeleteCmd)

	unitAddCmd.Flags().String("course", "", "course id")
	unitAddCmd.Flags().String("description", "", "free-form description")
	_ = unitAddCmd.MarkFlagRequired("course")
	unitListCmd.Flags().String("course", "", "course id")
	_ = unitListCmd.MarkFlagRequired("course")

	noteAddCmd.Flags().String("unit", "", "unit id")
	noteAddCmd.Flags().String("content", "", "note body")
	noteAddCmd.Flags().StringSlice("tags", nil, "comma separated tags")
	_ = noteAddCmd.MarkFlagRequired("unit")
	noteListCmd.Flags().String("course", "", "course id")
	noteListCmd.Flags().String("unit", "", "unit id")
}
