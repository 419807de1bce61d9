// Package icon renders status symbols in plain ASCII or emoji.
package icon

import (
	"github.com/beachcam-al/beachcam/key"
	"github.com/spf13/viper"
)

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Camera
	Fallback
)

type iconDef struct {
	emoji string
	plain string
}

var icons = map[Icon]iconDef{
	Success:  {emoji: "✅", plain: "✓"},
	Fail:     {emoji: "💀", plain: "✖"},
	Progress: {emoji: "⏳", plain: "…"},
	Camera:   {emoji: "🎥", plain: "●"},
	Fallback: {emoji: "↩️", plain: "↩"},
}

// Get returns the symbol for i. Colored CLI output uses emoji; plain output uses ASCII-like glyphs.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	if viper.GetBool(key.CliColored) {
		return def.emoji
	}
	return def.plain
}
