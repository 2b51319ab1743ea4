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
	"os"

	"github.com/spf13/cobra"

	"github.com/eslsoft/studydesk/internal/app"
	"github.com/eslsoft/studydesk/internal/infrastructure/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "studydesk",
	Short:        "Personal study desk: courses, tasks, flashcards and grades",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "", "database driver: sqlite3, postgres or pgx")
	flags.String("db-url", "", "database DSN, overrides the discrete database settings")
	flags.String("data-dir", "", "directory holding the sqlite database and the theme flag")
	flags.String("owner", "", "owner id used to scope reads and writes")
	flags.String("user", "", "local profile name")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	bindFlagToViper("database.driver", flags.Lookup("db-driver"))
	bindFlagToViper("database.url", flags.Lookup("db-url"))
	bindFlagToViper("store.data_dir", flags.Lookup("data-dir"))
	bindFlagToViper("user.owner", flags.Lookup("owner"))
	bindFlagToViper("user.name", flags.Lookup("user"))
	bindFlagToViper("log.level", flags.Lookup("log-level"))
}

// loadContainer reads configuration and builds the application container.
// Callers must invoke the returned cleanup.
func loadContainer() (*app.Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	c, cleanup, err := app.Initialize(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize app: %w", err)
	}
	return c, cleanup, nil
}
