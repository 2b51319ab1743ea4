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

	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/entity"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit the user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and the current study streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		name := c.Config.User.Name
		user, err := c.Profiles.Ensure(cmd.Context(), name)
		if err != nil {
			return err
		}
		streak, err := c.Profiles.Streak(cmd.Context(), name)
		if err != nil {
			return err
		}
		last := "never"
		if user.LastStudyDate != nil {
			last = user.LastStudyDate.Local().Format("2006-01-02")
		}
		renderTable(cmd.OutOrStdout(), []string{"NAME", "THEME", "STREAK", "LAST STUDY"}, [][]string{
			{user.Name, string(entity.NormalizeTheme(user.Theme)), strconv.Itoa(streak), last},
		})
		return nil
	},
}

var profileThemeCmd = &cobra.Command{
	Use:   "theme [light|dark|system|pink]",
	Short: "Print or change the theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		name := c.Config.User.Name
		if len(args) == 0 {
			theme, err := c.Profiles.Theme(cmd.Context(), name)
			if err != nil {
				return err
			}
			cmd.Println(theme)
			return nil
		}
		user, err := c.Profiles.SetTheme(cmd.Context(), name, args[0])
		if err != nil {
			return err
		}
		cmd.Printf("theme set to %s\n", user.Theme)
		return nil
	},
}

var profileStudyCmd = &cobra.Command{
	Use:   "study",
	Short: "Log a study session and update the streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, _ := cmd.Flags().GetString("course")
		minutes, _ := cmd.Flags().GetInt("minutes")
		notes, _ := cmd.Flags().GetString("notes")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		user, session, err := c.Profiles.RecordStudy(cmd.Context(), c.Config.User.Name, &entity.StudySession{
			OwnerID:         c.Config.User.Owner,
			CourseID:        courseID,
			DurationMinutes: minutes,
			Notes:           notes,
		})
		if err != nil {
			return err
		}
		cmd.Printf("logged %d minutes, streak is now %s\n", session.DurationMinutes, pluralDays(user.StudyStreak))
		return nil
	},
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileThemeCmd, profileStudyCmd)

	profileStudyCmd.Flags().String("course", "", "course studied, optional")
	profileStudyCmd.Flags().Int("minutes", 0, "session length in minutes")
	profileStudyCmd.Flags().String("notes", "", "free-form notes")
}
