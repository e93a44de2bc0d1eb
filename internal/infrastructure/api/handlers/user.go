package handlers

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/interactor"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
	"net/http"
	"time"
)

type UserHandler struct {
	users   *interactor.UserInteractor
	auth    *interactor.AuthInteractor
	timeout time.Duration
	logger  *zerolog.Logger
}

func NewUserHandler(users *interactor.UserInteractor, auth *interactor.AuthInteractor, timeout time.Duration) *UserHandler {
	logger := log.GetLogger()
	return &UserHandler{users: users, auth: auth, timeout: timeout, logger: &logger}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var dto dtos.LoginDTO
	if err := decode(r, &dto, h.logger); err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, &dto)
	if err != nil {
		fail(w, err, errors.ErrFailedLogin, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, result)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateUserDTO
	if err := decode(r, &dto, h.logger); err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.CreateUser(ctx, &dto)
	if err != nil {
		fail(w, err, errors.ErrFailedCreateUser, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := page(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	result, err := h.users.ListUsers(ctx, p)
	if err != nil {
		fail(w, err, errors.ErrFailedListUsers, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, result)
}
