package handlers

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/interactor"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"net/http"
	"time"
)

type MerchantHandler struct {
	interactor *interactor.MerchantInteractor
	timeout    time.Duration
	logger     *zerolog.Logger
}

func NewMerchantHandler(interactor *interactor.MerchantInteractor, timeout time.Duration) *MerchantHandler {
	logger := log.GetLogger()
	return &MerchantHandler{interactor: interactor, timeout: timeout, logger: &logger}
}

func (h *MerchantHandler) CreateMerchant(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateMerchantDTO
	if err := decode(r, &dto, h.logger); err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	merchant, err := h.interactor.CreateMerchant(ctx, &dto)
	if err != nil {
		fail(w, err, errors.ErrFailedCreateMerchant, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusCreated, merchant)
}

func (h *MerchantHandler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	merchant, err := h.interactor.GetMerchant(ctx, chi.URLParam(r, http2.MerchantIDParam))
	if err != nil {
		fail(w, err, errors.ErrFailedGetMerchant, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, merchant)
}

func (h *MerchantHandler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := page(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	result, err := h.interactor.ListMerchants(ctx, p)
	if err != nil {
		fail(w, err, errors.ErrFailedListMerchants, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, result)
}

func (h *MerchantHandler) UpdateMerchant(w http.ResponseWriter, r *http.Request) {
	var dto dtos.UpdateMerchantDTO
	if err := decode(r, &dto, h.logger); err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	merchant, err := h.interactor.UpdateMerchant(ctx, chi.URLParam(r, http2.MerchantIDParam), &dto)
	if err != nil {
		fail(w, err, errors.ErrFailedUpdateMerchant, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, merchant)
}
