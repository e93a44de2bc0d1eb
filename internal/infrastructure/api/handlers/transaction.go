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

type TransactionHandler struct {
	interactor *interactor.TransactionInteractor
	timeout    time.Duration
	logger     *zerolog.Logger
}

func NewTransactionHandler(interactor *interactor.TransactionInteractor, timeout time.Duration) *TransactionHandler {
	logger := log.GetLogger()
	return &TransactionHandler{interactor: interactor, timeout: timeout, logger: &logger}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateTransactionDTO
	if err := decode(r, &dto, h.logger); err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tx, err := h.interactor.CreateTransaction(ctx, &dto)
	if err != nil {
		fail(w, err, errors.ErrFailedProcessTransaction, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tx, err := h.interactor.GetTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		fail(w, err, errors.ErrFailedGetTransaction, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tx, err := h.interactor.ApproveTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		fail(w, err, errors.ErrFailedApproveTransaction, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) DeclineTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	tx, err := h.interactor.DeclineTransaction(ctx, chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		fail(w, err, errors.ErrFailedDeclineTransaction, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, tx)
}

// ListTransactions lists every transaction, or one merchant's when ?merchantId= is set.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := page(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}
	merchantID := r.URL.Query().Get(http2.MerchantIDQuery)

	var result interface{}
	if merchantID != "" {
		result, err = h.interactor.ListMerchantTransactions(ctx, merchantID, p)
	} else {
		result, err = h.interactor.ListTransactions(ctx, p)
	}
	if err != nil {
		fail(w, err, errors.ErrFailedListTransactions, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, result)
}

func (h *TransactionHandler) ListMerchantTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := page(r)
	if err != nil {
		errors.HandleHTTPError(w, err)
		return
	}

	result, err := h.interactor.ListMerchantTransactions(ctx, chi.URLParam(r, http2.MerchantIDParam), p)
	if err != nil {
		fail(w, err, errors.ErrFailedListTransactions, h.logger)
		return
	}

	http2.WriteJSON(w, http.StatusOK, result)
}
