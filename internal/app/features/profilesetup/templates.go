// internal/app/features/profilesetup/templates.go
package profilesetup

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "profilesetup",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
