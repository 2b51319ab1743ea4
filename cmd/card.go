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

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage flashcards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a flashcard in a unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		unitID, _ := cmd.Flags().GetString("unit")
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		confidence, _ := cmd.Flags().GetInt("confidence")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		card, err := c.Cards.Create(cmd.Context(), c.Config.User.Owner, &entity.Flashcard{
			UnitID:          unitID,
			Question:        question,
			Answer:          answer,
			Tags:            tags,
			ConfidenceLevel: confidence,
		})
		if err != nil {
			return err
		}
		cmd.Printf("created flashcard %s\n", card.ID)
		return nil
	},
}

var cardReviewCmd = &cobra.Command{
	Use:   "review ID",
	Short: "Record a review with a confidence level from 1 to 5",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confidence, _ := cmd.Flags().GetInt("confidence")

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		card, err := c.Cards.Review(cmd.Context(), args[0], confidence)
		if err != nil {
			return err
		}
		cmd.Printf("reviewed %d times, confidence %d\n", card.ReviewCount, card.ConfidenceLevel)
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the flashcards of a unit or course",
	RunE: func(cmd *cobra.Command, args []string) error {
		unitID, _ := cmd.Flags().GetString("unit")
		courseID, _ := cmd.Flags().GetString("course")
		if unitID == "" && courseID == "" {
			return entity.ErrInvalidID
		}

		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		var cards []entity.Flashcard
		if unitID != "" {
			cards, err = c.Cards.ListByUnit(cmd.Context(), unitID)
		} else {
			cards, err = c.Cards.ListByCourse(cmd.Context(), courseID)
		}
		if err != nil {
			return err
		}
		rows := lo.Map(cards, func(f entity.Flashcard, _ int) []string {
			last := "never"
			if f.LastReviewed != nil {
				last = formatTime(*f.LastReviewed)
			}
			return []string{f.ID, f.Question, strconv.Itoa(f.ConfidenceLevel), strconv.Itoa(f.ReviewCount), last, strings.Join(f.Tags, ", ")}
		})
		renderTable(cmd.OutOrStdout(), []string{"ID", "QUESTION", "CONFIDENCE", "REVIEWS", "LAST REVIEWED", "TAGS"}, rows)
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a flashcard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Cards.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted flashcard %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.AddCommand(cardAddCmd, cardReviewCmd, cardListCmd, cardDeleteCmd)

	cardAddCmd.Flags().String("unit", "", "unit id")
	cardAddCmd.Flags().String("question", "", "front of the card")
	cardAddCmd.Flags().String("answer", "", "back of the card")
	cardAddCmd.Flags().StringSlice("tags", nil, "comma separated tags")
	cardAddCmd.Flags().Int("confidence", 1, "initial confidence level, 1 to 5")
	_ = cardAddCmd.MarkFlagRequired("unit")
	_ = cardAddCmd.MarkFlagRequired("question")
	_ = cardAddCmd.MarkFlagRequired("answer")

	cardReviewCmd.Flags().Int("confidence", 0, "confidence level, 1 to 5")
	_ = cardReviewCmd.MarkFlagRequired("confidence")

	cardListCmd.Flags().String("unit", "", "unit id")
	cardListCmd.Flags().String("course", "", "course id")
}
