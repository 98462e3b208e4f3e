// internal/api/admin/handlers.go
// Admin console handlers: dashboard, schedule grid, booking control.
package admin

import (
	"sync"
	"time"

	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/stats"
)

var (
	client   *backend.Client
	poller   *stats.Poller
	initOnce sync.Once
)

const backendTimeout = 10 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(c *backend.Client, p *stats.Poller) {
	if c == nil {
		return
	}
	initOnce.Do(func() {
		client = c
		poller = p
	})
}

func loadClient() *backend.Client { return client }
