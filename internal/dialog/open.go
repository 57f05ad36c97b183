package dialog

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// OpenURL opens url in the default browser.
func OpenURL(ctx context.Context, url string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	if err := exec.CommandContext(ctx, name, url).Run(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
