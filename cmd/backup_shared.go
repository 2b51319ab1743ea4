package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/studydesk/internal/usecase/backup"
)

func collectionsFromConfig(key string) []string {
	return normalizeCollections(viper.GetStringSlice(key))
}

func normalizeCollections(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			result = append(result, name)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// backupOptions builds the scope shared by export and import.
func backupOptions(owner string, collections []string, reporter backup.ProgressReporter) []backup.Option {
	opts := []backup.Option{backup.WithOwner(owner)}
	if len(collections) > 0 {
		opts = append(opts, backup.WithCollections(collections))
	}
	if reporter != nil {
		opts = append(opts, backup.WithProgressReporter(reporter))
	}
	return opts
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

type tableProgress struct {
	total   int
	count   int
	printed int
	step    int
}

// cliProgress prints per-collection progress lines for export and import.
type cliProgress struct {
	out    io.Writer
	verb   string
	tables map[string]*tableProgress
}

func newCLIProgress(out io.Writer, verb string) *cliProgress {
	return &cliProgress{out: out, verb: verb, tables: make(map[string]*tableProgress)}
}

func (p *cliProgress) StartTable(table string, total int) {
	total = max(total, 0)
	p.tables[table] = &tableProgress{total: total, step: progressStep(total)}
	fmt.Fprintf(p.out, "开始%s %s (共 %d 条)\n", p.verb, table, total)
}

func (p *cliProgress) Increment(table string, delta int) {
	st, ok := p.tables[table]
	if !ok || delta <= 0 {
		return
	}
	st.count += delta
	if st.count == st.total || st.printed == 0 || st.count-st.printed >= st.step {
		p.report(table, st)
	}
}

func (p *cliProgress) FinishTable(table string) {
	st, ok := p.tables[table]
	if !ok {
		return
	}
	if st.count != st.printed {
		p.report(table, st)
	}
	if st.total > 0 {
		fmt.Fprintf(p.out, "完成%s %s: %d/%d 条\n", p.verb, table, st.count, st.total)
	} else {
		fmt.Fprintf(p.out, "完成%s %s: %d 条\n", p.verb, table, st.count)
	}
	delete(p.tables, table)
}

func (p *cliProgress) report(table string, st *tableProgress) {
	if st.total > 0 {
		fmt.Fprintf(p.out, "%s进度 %s: %d/%d\n", p.verb, table, st.count, st.total)
	} else {
		fmt.Fprintf(p.out, "%s进度 %s: 已处理 %d 条\n", p.verb, table, st.count)
	}
	st.printed = st.count
}

// progressStep prints roughly twenty updates per collection, at most every 1000 records.
func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	return min(max(total/20, 1), 1000)
}
