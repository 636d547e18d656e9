package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"gamey/internal/bot"
	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
	ybotRPC "gamey/microservices/proto"
)

// YBotUseCase serves YBotService from a bot registry.
type YBotUseCase struct {
	registry *bot.Registry
	log      *zap.SugaredLogger
}

func NewYBotUseCase(registry *bot.Registry, log *zap.SugaredLogger) *YBotUseCase {
	return &YBotUseCase{registry: registry, log: log}
}

func (y *YBotUseCase) ChooseMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	botID, position, err := ybotRPC.ParseChooseRequest(in)
	if err != nil {
		return nil, ybotRPC.ToStatus(err)
	}
	snap, err := yen.Decode(position)
	if err != nil {
		return nil, ybotRPC.ToStatus(err)
	}

	c, err := y.registry.Choose(botID, board.Resume(snap.State))
	if err != nil {
		y.log.Warnw("bot could not move", "bot_id", botID, "error", err)
		return nil, ybotRPC.ToStatus(err)
	}

	resp, err := ybotRPC.NewChooseResponse(c)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	y.log.Debugw("bot moved", "bot_id", botID, "coords", c.String())
	return resp, nil
}
