package ybot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gamey/internal/bot"
	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
	errs "gamey/internal/errors"
)

// BotClient asks a bot for a move. It is served either in process or by the
// ybot microservice over gRPC.
type BotClient interface {
	Choose(ctx context.Context, botID string, y yen.YEN) (board.Coordinates, error)
}

// LocalBotClient answers from an in-process registry.
type LocalBotClient struct {
	registry *bot.Registry
}

func NewLocalBotClient(registry *bot.Registry) *LocalBotClient {
	return &LocalBotClient{registry: registry}
}

func (l *LocalBotClient) Choose(ctx context.Context, botID string, y yen.YEN) (board.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return board.Coordinates{}, err
	}
	snap, err := yen.Decode(y)
	if err != nil {
		return board.Coordinates{}, err
	}
	return l.registry.Choose(botID, snap.State)
}

type BotUseCase struct {
	client BotClient
	log    *zap.SugaredLogger
}

func NewBotUseCase(client BotClient, log *zap.SugaredLogger) *BotUseCase {
	return &BotUseCase{client: client, log: log}
}

// Choose returns the bot's move on s. The answer is checked against s like a
// human move would be; a bot proposing an illegal cell is an internal error.
func (b *BotUseCase) Choose(ctx context.Context, botID string, snap yen.Snapshot) (board.Coordinates, error) {
	snap.State = board.Resume(snap.State)
	if snap.State.Finished() {
		return board.Coordinates{}, errs.ErrGameAlreadyFinished
	}
	if len(snap.State.EmptyCells()) == 0 {
		return board.Coordinates{}, errs.ErrNoLegalMoves
	}

	c, err := b.client.Choose(ctx, botID, yen.Encode(snap))
	if err != nil {
		return board.Coordinates{}, err
	}
	if _, _, err := snap.State.ApplyMove(c); err != nil {
		b.log.Errorw("bot proposed an illegal move", "bot_id", botID, "coords", c.String(), "error", err)
		return board.Coordinates{}, fmt.Errorf("%w: bot %s proposed %s", errs.ErrInternal, botID, c)
	}
	return c, nil
}

// ChooseYEN decodes y and asks botID for a move on it.
func (b *BotUseCase) ChooseYEN(ctx context.Context, botID string, y yen.YEN) (board.Coordinates, error) {
	snap, err := yen.Decode(y)
	if err != nil {
		return board.Coordinates{}, err
	}
	return b.Choose(ctx, botID, snap)
}
