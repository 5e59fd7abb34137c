package chromium

import "github.com/hopngo/a11y-audit/internal/platform"

// BackendName is the name the backend registers under.
const BackendName = "chromium"

func init() {
	platform.Register(BackendName, Open)
}
