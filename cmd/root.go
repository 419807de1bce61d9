// Package cmd implements the command-line interface for beachcam.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beachcam-al/beachcam/color"
	"github.com/beachcam-al/beachcam/constant"
	"github.com/beachcam-al/beachcam/icon"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/log"
	"github.com/beachcam-al/beachcam/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exit is swapped in tests so handleErr can be observed.
var exit = os.Exit

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
}

var rootCmd = &cobra.Command{
	Use:   constant.Beachcam,
	Short: "Resolve and open the live beach camera streams",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.Sea).Render("    - Resolve and open the live beach camera streams"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}
		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Record(nil, err)
		printErr(os.Stderr, err)
		exit(1)
	}
}

func printErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
}
