package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gameDelivery "gamey/internal/delivery/game"
	sessionDelivery "gamey/internal/delivery/session"
	userDelivery "gamey/internal/delivery/user"
	ybotDelivery "gamey/internal/delivery/ybot"
	ownMiddleware "gamey/internal/middleware"
)

type MainDeliveryHandler struct {
	Game    *gameDelivery.GameHandler
	YBot    *ybotDelivery.YBotHandler
	Session *sessionDelivery.SessionHandler
	// User is nil when no user store is configured.
	User *userDelivery.UserHandler
}

func (h *MainDeliveryHandler) Router(isLocalCors bool) *chi.Mux {
	r := chi.NewRouter()
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/{api_version}", func(r chi.Router) {
		r.Post("/game/new", h.Game.HandleNewGame)
		r.Post("/game/move", h.Game.HandleMove)
		r.Post("/ybot/choose/{bot_id}", h.YBot.HandleChoose)

		r.Post("/session", h.Session.HandleCreate)
		r.Get("/session/{id}", h.Session.HandleGet)
		r.Post("/session/{id}/move", h.Session.HandleMove)
		r.Get("/session/{id}/ws", h.Session.HandleSubscribe)
	})

	if h.User != nil {
		r.Post("/createuser", h.User.HandleCreateUser)
	}
	return r
}
