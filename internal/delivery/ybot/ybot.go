package ybot

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gamey/internal/domain/game"
	"gamey/internal/domain/yen"
	"gamey/internal/httpresponse"
	"gamey/internal/usecase/ybot"
	"gamey/internal/utils"
)

type YBotHandler struct {
	log   *zap.SugaredLogger
	botUC *ybot.BotUseCase
}

func NewYBotHandler(log *zap.SugaredLogger, botUC *ybot.BotUseCase) *YBotHandler {
	return &YBotHandler{log: log, botUC: botUC}
}

// HandleChoose asks bot_id for a move on the YEN in the request body. The
// move is not applied.
func (h *YBotHandler) HandleChoose(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "api_version")
	botID := chi.URLParam(r, "bot_id")
	errResp := httpresponse.ErrorResponse{ApiVersion: version, BotID: botID}

	if err := utils.CheckApiVersion(version); err != nil {
		httpresponse.WriteDomainError(w, h.log, err, errResp)
		return
	}

	var position yen.YEN
	if err := utils.DecodeJSONRequest(w, r, &position); err != nil {
		httpresponse.WriteDecodeError(w, err, errResp)
		return
	}

	c, err := h.botUC.ChooseYEN(r.Context(), botID, position)
	if err != nil {
		httpresponse.WriteDomainError(w, h.log, err, errResp)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.BotChooseResponse{
		ApiVersion: version,
		BotID:      botID,
		Coords:     c,
	})
}
