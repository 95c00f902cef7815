package api

import (
	"database/sql"
	"time"

	"github.com/lucasmv/flashdeck/internal/services"
)

type Server struct {
	DB             *sql.DB
	UserService    services.UserService
	DeckService    services.DeckService
	CardService    services.CardService
	SessionService services.SessionService
	CookieMaxAge   time.Duration
	StudyLimit     int
}
