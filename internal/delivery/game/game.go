package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gamey/internal/domain/game"
	"gamey/internal/httpresponse"
	gameuc "gamey/internal/usecase/game"
	"gamey/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{log: log, gameUC: gameUC}
}

// HandleMove applies one move to the position in the request body.
func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "api_version")
	if err := utils.CheckApiVersion(version); err != nil {
		httpresponse.WriteDomainError(w, g.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		g.log.Debugw("bad move request", "error", err)
		httpresponse.WriteDecodeError(w, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	resp, err := g.gameUC.Move(req)
	if err != nil {
		httpresponse.WriteDomainError(w, g.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleNewGame returns the YEN of an empty board.
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "api_version")
	if err := utils.CheckApiVersion(version); err != nil {
		httpresponse.WriteDomainError(w, g.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	var req game.NewGameRequest
	if err := utils.DecodeOptionalJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteDecodeError(w, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	y, err := g.gameUC.NewGame(req)
	if err != nil {
		httpresponse.WriteDomainError(w, g.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, y)
}
