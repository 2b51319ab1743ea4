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
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/entity"
	"github.com/eslsoft/studydesk/internal/grade"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage academic records and GPA",
}

var recordAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a finished course to the transcript",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")
		credits, _ := cmd.Flags().GetFloat64("credits")
		letter, _ := cmd.Flags().GetString("grade")
		notes, _ := cmd.Flags().GetString("notes")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		record, err := c.Academic.AddRecord(cmd.Context(), c.Config.User.Owner, &entity.AcademicRecord{
			Name:    strings.Join(args, " "),
			Term:    term,
			Credits: credits,
			Grade:   grade.Letter(strings.ToUpper(strings.TrimSpace(letter))),
			Notes:   notes,
		})
		if err != nil {
			return err
		}
		cmd.Printf("added %s (%s, %s credits)\n", record.Name, record.Term, strconv.FormatFloat(record.Credits, 'f', -1, 64))
		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List academic records",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		records, err := c.Academic.ListRecords(cmd.Context(), c.Config.User.Owner, term)
		if err != nil {
			return err
		}
		rows := lo.Map(records, func(r entity.AcademicRecord, _ int) []string {
			return []string{r.ID, r.Term, r.Name, strconv.FormatFloat(r.Credits, 'f', -1, 64), colorLetter(r.Grade)}
		})
		renderTable(cmd.OutOrStdout(), []string{"ID", "TERM", "NAME", "CREDITS", "GRADE"}, rows)
		return nil
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an academic record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Academic.DeleteRecord(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted record %s\n", args[0])
		return nil
	},
}

var recordGPACmd = &cobra.Command{
	Use:   "gpa",
	Short: "Compute the credit-weighted GPA",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetString("term")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		gpa, err := c.Academic.GPA(cmd.Context(), c.Config.User.Owner, term)
		if err != nil {
			return err
		}
		scope := "overall"
		if term != "" {
			scope = term
		}
		cmd.Println(headerStyle.Render(fmt.Sprintf("GPA (%s): %.2f", scope, gpa)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordAddCmd, recordListCmd, recordDeleteCmd, recordGPACmd)

	recordAddCmd.Flags().String("term", "", "term label, e.g. \"2024 Fall\"")
	recordAddCmd.Flags().Float64("credits", 0, "credit hours")
	letters := lo.Map(grade.Letters(), func(l grade.Letter, _ int) string { return string(l) })
	recordAddCmd.Flags().String("grade", "", fmt.Sprintf("letter grade (%s), empty when not yet graded", strings.Join(letters, " ")))
	recordAddCmd.Flags().String("notes", "", "free-form notes")
	_ = recordAddCmd.MarkFlagRequired("term")
	_ = recordAddCmd.MarkFlagRequired("credits")

	recordListCmd.Flags().String("term", "", "only records of this term")
	recordGPACmd.Flags().String("term", "", "only records of this term")
}
