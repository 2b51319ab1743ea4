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
	"github.com/spf13/cobra"
)

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Inspect and migrate data between owners",
}

var ownerHasDataCmd = &cobra.Command{
	Use:   "has-data OWNER",
	Short: "Report whether an owner has any courses, tasks or records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		has, err := c.Owners.HasData(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if has {
			cmd.Printf("%s has data\n", args[0])
		} else {
			cmd.Printf("%s has no data\n", args[0])
		}
		return nil
	},
}

var ownerCopyCmd = &cobra.Command{
	Use:   "copy FROM TO",
	Short: "Copy every record of one owner to another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := loadContainer()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := c.Owners.Copy(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		cmd.Printf("copied data from %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ownerCmd)
	ownerCmd.AddCommand(ownerHasDataCmd, ownerCopyCmd)
}
