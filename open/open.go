// Package open launches URLs with the system's default handler or a named application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/beachcam-al/beachcam/constant"
)

// Start opens target with app, or with the default handler when app is empty, without waiting for it.
func Start(target, app string) error {
	cmd, err := Command(runtime.GOOS, target, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the command that opens target on the given OS.
func Command(goos, target, app string) (*exec.Cmd, error) {
	if app == "" {
		switch goos {
		case constant.Windows:
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
		case constant.Darwin:
			return exec.Command("open", target), nil
		case constant.Linux:
			return exec.Command("xdg-open", target), nil
		case constant.Android:
			return exec.Command("termux-open", target), nil
		}
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}

	switch goos {
	case constant.Windows:
		// start treats & as a command separator
		escaped := strings.ReplaceAll(target, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), nil
	case constant.Darwin:
		return exec.Command("open", "-a", app, target), nil
	case constant.Linux:
		return exec.Command(app, target), nil
	case constant.Android:
		return exec.Command("termux-open", "--choose", target), nil
	}
	return nil, fmt.Errorf("unsupported OS: %s", goos)
}
