package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/cache"
	"github.com/ghuser/hourglass/pkg/config"
	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/pkg/events"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/telemetry"
	"github.com/ghuser/hourglass/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's route and subscriber registration.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "time entry recorded", "time_entry_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient        // nil disables the project cache
	TemporalClient *workflows.TemporalClient // nil in the api process
	SessionStore   sessions.Store            // nil in the worker process
	Tokens         *auth.TokenIssuer         // nil in the worker process
	Metrics        *telemetry.CommandMetrics // nil disables command metrics
}
