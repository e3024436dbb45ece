package deps

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/favtube/internal/favorites"
	"github.com/MrSnakeDoc/favtube/internal/logger"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time            // for testing, defaults to time.Now
	AllowedHosts  []string                    // Host headers allowed to access the API
	AllowedCIDRS  []string                    // IPs allowed to access admin endpoints
	TrustProxy    bool                        // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string                    // Origins allowed by CORS
	RateBurst     int                         // Token bucket size for mutating endpoints
	RatePerMin    int                         // Tokens refilled per minute and client IP
	Favorites     *favorites.Service          // Owner of the favorites collection
	StorePing     func(context.Context) error // Connectivity check of the store backend (nil when not applicable)
	ImportFile    string                      // Import file path (empty if import disabled)
	ReloadTrigger chan struct{}               // Channel to trigger a manual import (nil if import disabled)
	Validate      *validator.Validate         // Request validator shared by handlers
}

// Now returns d.TimeNow() or time.Now() when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
