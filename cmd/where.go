package cmd

import (
	"os"

	"github.com/beachcam-al/beachcam/color"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/style"
	"github.com/beachcam-al/beachcam/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name   string
	flag   string
	short  string
	where  func() string
	hidden bool
}

var whereTargets = []whereTarget{
	{"Config", "config", "c", where.Config, false},
	{"Logs", "logs", "l", where.Logs, false},
	{"Pages", "pages", "p", where.Pages, false},
	{"Cache", "cache", "", where.Cache, true},
	{"Temp", "temp", "", where.Temp, true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range whereTargets {
		whereCmd.Flags().BoolP(t.flag, t.short, false, t.name+" path")
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(t whereTarget, _ int) string {
		return t.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the paths of the config, logs and page registry",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range whereTargets {
			if lo.Must(cmd.Flags().GetBool(t.flag)) {
				cmd.Println(t.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(whereTargets, func(t whereTarget, _ int) bool { return t.hidden })
		for i, t := range visible {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.where())
			if i < len(visible)-1 {
				cmd.Println()
			}
		}

		if p := log.Path(); p != "" {
			cmd.Printf("\n%s\n", style.Faint("writing logs to "+p))
		}
	},
}
