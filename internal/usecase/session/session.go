package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamey/internal/bot"
	"gamey/internal/domain/board"
	"gamey/internal/domain/game"
	"gamey/internal/domain/session"
	"gamey/internal/domain/yen"
	errs "gamey/internal/errors"
	gameuc "gamey/internal/usecase/game"
	"gamey/internal/usecase/ybot"
)

// SessionStore keeps sessions between requests. Update must apply fn
// atomically: if the session changed after it was read, nothing is written
// and ErrSessionConflict is returned.
type SessionStore interface {
	Create(ctx context.Context, s session.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (session.Session, error)
	Update(ctx context.Context, id string, ttl time.Duration, fn func(s *session.Session) error) (session.Session, error)
}

type SessionUseCase struct {
	store       SessionStore
	bots        *ybot.BotUseCase
	log         *zap.SugaredLogger
	ttl         time.Duration
	defaultSize int
	now         func() time.Time
}

func NewSessionUseCase(store SessionStore, bots *ybot.BotUseCase, log *zap.SugaredLogger, ttl time.Duration, defaultSize int) *SessionUseCase {
	return &SessionUseCase{
		store:       store,
		bots:        bots,
		log:         log,
		ttl:         ttl,
		defaultSize: defaultSize,
		now:         time.Now,
	}
}

func (u *SessionUseCase) Create(ctx context.Context, req session.CreateSessionRequest) (session.Session, error) {
	mode := req.Mode
	if mode == "" {
		mode = session.ModeLocal
	}
	if mode != session.ModeLocal && mode != session.ModeBot {
		return session.Session{}, fmt.Errorf("%w: unknown mode %q", errs.ErrInvalidMode, req.Mode)
	}
	botID := ""
	if mode == session.ModeBot {
		botID = req.BotID
		if botID == "" {
			botID = bot.RandomBotID
		}
	}

	size := req.Size
	if size == 0 {
		size = u.defaultSize
	}
	if err := gameuc.CheckBoardSize(size); err != nil {
		return session.Session{}, err
	}
	state, err := board.New(size)
	if err != nil {
		return session.Session{}, err
	}

	now := u.now()
	s := session.Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		BotID:     botID,
		Moves:     []board.Coordinates{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	setPosition(&s, yen.Snapshot{State: state, Players: yen.DefaultPlayers})

	if err := u.store.Create(ctx, s, u.ttl); err != nil {
		return session.Session{}, err
	}
	u.log.Infow("session created", "id", s.ID, "mode", s.Mode, "size", size, "bot_id", botID)
	return s, nil
}

func (u *SessionUseCase) Get(ctx context.Context, id string) (session.Session, error) {
	return u.store.Get(ctx, id)
}

// Move plays c for the player to move. In bot mode the bot answers inside
// the same update, so a stored bot session is always waiting for the human.
func (u *SessionUseCase) Move(ctx context.Context, id string, c board.Coordinates) (session.Session, error) {
	return u.store.Update(ctx, id, u.ttl, func(s *session.Session) error {
		if s.Status == game.StatusFinished {
			return errs.ErrGameAlreadyFinished
		}
		snap, err := yen.Decode(s.YEN)
		if err != nil {
			return err
		}

		next, _, err := board.Resume(snap.State).ApplyMove(c)
		if err != nil {
			return err
		}
		s.Moves = append(s.Moves, c)

		if s.Mode == session.ModeBot && !next.Finished() && next.Turn() == session.BotPlayer {
			reply, err := u.bots.Choose(ctx, s.BotID, yen.Snapshot{State: next, Players: snap.Players})
			if err != nil {
				return err
			}
			if next, _, err = next.ApplyMove(reply); err != nil {
				return fmt.Errorf("%w: %v", errs.ErrInternal, err)
			}
			s.Moves = append(s.Moves, reply)
		}

		setPosition(s, yen.Snapshot{State: next, Players: snap.Players})
		s.UpdatedAt = u.now()
		if winner, ok := next.Winner(); ok {
			u.log.Infow("session finished", "id", s.ID, "winner", int(winner), "moves", len(s.Moves))
		}
		return nil
	})
}

func setPosition(s *session.Session, snap yen.Snapshot) {
	view := game.NewMoveResponse(snap)
	s.YEN = view.YEN
	s.Status = view.Status
	s.Winner = view.Winner
	s.NextPlayer = view.NextPlayer
}
