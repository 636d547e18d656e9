package repo

import (
	"context"
	"time"

	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
	ybotRPC "gamey/microservices/proto"
)

// GrpcBotClient asks the ybot microservice for moves.
type GrpcBotClient struct {
	client  ybotRPC.YBotServiceClient
	timeout time.Duration
}

func NewGrpcBotClient(client ybotRPC.YBotServiceClient) *GrpcBotClient {
	return &GrpcBotClient{client: client, timeout: 5 * time.Second}
}

func (g *GrpcBotClient) Choose(ctx context.Context, botID string, y yen.YEN) (board.Coordinates, error) {
	in, err := ybotRPC.NewChooseRequest(botID, y)
	if err != nil {
		return board.Coordinates{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.client.ChooseMove(ctx, in)
	if err != nil {
		return board.Coordinates{}, ybotRPC.FromStatus(err)
	}
	return ybotRPC.ParseChooseResponse(out)
}
