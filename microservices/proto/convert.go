package ybot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"gamey/internal/domain/board"
	"gamey/internal/domain/yen"
	errs "gamey/internal/errors"
)

func NewChooseRequest(botID string, y yen.YEN) (*structpb.Struct, error) {
	players := make([]any, len(y.Players))
	for i, p := range y.Players {
		players[i] = p
	}
	return structpb.NewStruct(map[string]any{
		"bot_id": botID,
		"yen": map[string]any{
			"size":    y.Size,
			"turn":    y.Turn,
			"players": players,
			"layout":  y.Layout,
		},
	})
}

// ParseChooseRequest is the inverse of NewChooseRequest. Shape errors are
// reported as ErrMalformedLayout.
func ParseChooseRequest(in *structpb.Struct) (string, yen.YEN, error) {
	fields := in.GetFields()
	botID := fields["bot_id"].GetStringValue()
	raw := fields["yen"].GetStructValue()
	if raw == nil {
		return "", yen.YEN{}, fmt.Errorf("%w: missing yen", errs.ErrMalformedLayout)
	}

	var y yen.YEN
	var err error
	if y.Size, err = intField(raw, "size"); err != nil {
		return "", yen.YEN{}, err
	}
	if y.Turn, err = intField(raw, "turn"); err != nil {
		return "", yen.YEN{}, err
	}
	for _, v := range raw.GetFields()["players"].GetListValue().GetValues() {
		y.Players = append(y.Players, v.GetStringValue())
	}
	y.Layout = raw.GetFields()["layout"].GetStringValue()
	return botID, y, nil
}

func NewChooseResponse(c board.Coordinates) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"x": c.X, "y": c.Y, "z": c.Z})
}

func ParseChooseResponse(out *structpb.Struct) (board.Coordinates, error) {
	var c board.Coordinates
	var err error
	if c.X, err = intField(out, "x"); err != nil {
		return c, err
	}
	if c.Y, err = intField(out, "y"); err != nil {
		return c, err
	}
	if c.Z, err = intField(out, "z"); err != nil {
		return c, err
	}
	return c, nil
}

func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", errs.ErrMalformedLayout, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is not an integer", errs.ErrMalformedLayout, name)
	}
	return int(n.NumberValue), nil
}

// errorKinds lists the domain errors that cross the wire. The reason travels
// as a google.rpc.ErrorInfo detail so the client recovers the exact sentinel.
var errorKinds = []struct {
	reason string
	code   codes.Code
	err    error
}{
	{"BOT_NOT_FOUND", codes.NotFound, errs.ErrBotNotFound},
	{"MALFORMED_LAYOUT", codes.InvalidArgument, errs.ErrMalformedLayout},
	{"INVALID_COORDINATE", codes.InvalidArgument, errs.ErrInvalidCoordinate},
	{"CELL_OUT_OF_BOUNDS", codes.InvalidArgument, errs.ErrCellOutOfBounds},
	{"CELL_OCCUPIED", codes.InvalidArgument, errs.ErrCellOccupied},
	{"NO_LEGAL_MOVES", codes.FailedPrecondition, errs.ErrNoLegalMoves},
	{"GAME_ALREADY_FINISHED", codes.FailedPrecondition, errs.ErrGameAlreadyFinished},
}

// ToStatus turns a domain error into a gRPC status.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if !errors.Is(err, kind.err) {
			continue
		}
		st := status.New(kind.code, err.Error())
		detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{Reason: kind.reason, Domain: ServiceName})
		if detailErr != nil {
			return st.Err()
		}
		return detailed.Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// FromStatus maps a gRPC error back onto the domain sentinels. Statuses
// without an ErrorInfo detail fall back to a mapping by code.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}

	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ServiceName {
			continue
		}
		for _, kind := range errorKinds {
			if kind.reason == info.GetReason() {
				return rewrap(kind.err, st.Message())
			}
		}
	}

	switch st.Code() {
	case codes.NotFound:
		return rewrap(errs.ErrBotNotFound, st.Message())
	case codes.InvalidArgument:
		return rewrap(errs.ErrMalformedLayout, st.Message())
	case codes.FailedPrecondition:
		return rewrap(errs.ErrNoLegalMoves, st.Message())
	default:
		return fmt.Errorf("%w: ybot: %s", errs.ErrInternal, st.Message())
	}
}

// rewrap wraps sentinel around msg without repeating the sentinel's text,
// which the server side already put in front of it.
func rewrap(sentinel error, msg string) error {
	if msg == sentinel.Error() {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, strings.TrimPrefix(msg, sentinel.Error()+": "))
}
