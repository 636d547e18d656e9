package user

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	userDomain "gamey/internal/domain/user"
	"gamey/internal/httpresponse"
	useruc "gamey/internal/usecase/user"
	"gamey/internal/utils"
)

type UserHandler struct {
	log    *zap.SugaredLogger
	userUC *useruc.UserUseCase
}

func NewUserHandler(log *zap.SugaredLogger, userUC *useruc.UserUseCase) *UserHandler {
	return &UserHandler{log: log, userUC: userUC}
}

func (u *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userDomain.CreateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteDecodeError(w, err, httpresponse.ErrorResponse{})
		return
	}

	created, err := u.userUC.CreateUser(r.Context(), req.Username)
	if err != nil {
		httpresponse.WriteDomainError(w, u.log, err, httpresponse.ErrorResponse{})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, userDomain.CreateUserResponse{
		Message: fmt.Sprintf("User %s created successfully!", created.Username),
	})
}
