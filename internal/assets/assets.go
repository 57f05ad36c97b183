// Package assets embeds the menu bar icon set.
package assets

import (
	"embed"
	"fmt"
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
)

//go:embed icons
var icons embed.FS

// cacheSize holds every style, appearance and visual state at once.
const cacheSize = 32

var cache = mustCache()

func mustCache() *lru.Cache[string, []byte] {
	c, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		panic(fmt.Sprintf("icon cache: %v", err))
	}
	return c
}

// Icon identifies one image of the set.
type Icon struct {
	Style      models.LogoStyle
	State      state.ProcessState
	Appearance appearance.Appearance
}

// Path returns the embedded path for the icon. Icons contrast with the
// menu bar, so a dark desktop uses the light variant and vice versa.
// Initial is drawn as Stopped.
func (i Icon) Path() string {
	variant := "dark"
	if i.Appearance == appearance.Dark {
		variant = "light"
	}
	return path.Join("icons",
		strings.ToLower(string(i.Style)),
		variant,
		strings.ToLower(i.State.Visual().String())+".png")
}

// Load returns the PNG bytes of the icon. Callers must not modify them;
// the slice is shared with every other caller of the same icon.
func (i Icon) Load() ([]byte, error) {
	p := i.Path()
	if data, ok := cache.Get(p); ok {
		return data, nil
	}
	data, err := icons.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("load icon %s: %w", p, err)
	}
	cache.Add(p, data)
	return data, nil
}
