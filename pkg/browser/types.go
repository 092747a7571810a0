package browser

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window.
	// Headed is the production default: some course platforms throttle
	// media in headless mode.
	Headless bool

	// SlowMo delays each driver operation by the given milliseconds
	SlowMo float64

	// StorageStatePath is the persisted authenticated-session artifact
	// consumed opaquely at context creation
	StorageStatePath string

	// UserAgent overrides the browser user agent
	UserAgent string

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session creation and navigation.
const (
	DefaultTimeout           = 30000.0 // 30 seconds in milliseconds
	DefaultNavigationTimeout = 60000.0 // 60 seconds in milliseconds
	DefaultViewportWidth     = 1920
	DefaultViewportHeight    = 1000
)

// chromiumArgs relax the autoplay policy so a muted programmatic play()
// succeeds without a user gesture.
var chromiumArgs = []string{
	"--autoplay-policy=no-user-gesture-required",
	"--disable-features=PreloadMediaEngagementData,MediaEngagementBypassAutoplayPolicies",
}
