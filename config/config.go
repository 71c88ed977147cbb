package config

import (
	"github.com/fleetscore/server/internal/database"
	"github.com/fleetscore/server/internal/http"
	"github.com/fleetscore/server/internal/traces"
)

type Configuration struct {
	HTTP     http.Configuration
	Database database.Configuration
	Tracing  traces.Configuration
}
