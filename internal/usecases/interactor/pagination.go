package interactor

import (
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
)

// normalizePage turns a raw request into a 1-based page capped at the configured maximum.
func normalizePage(p dtos.PageDTO, cfg config.Pagination) models.Page {
	page := models.Page{Number: p.Page, Limit: p.Limit}
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Number > dtos.MaxPage {
		page.Number = dtos.MaxPage
	}
	if page.Limit < 1 {
		page.Limit = cfg.Default()
	}
	if maxLimit := cfg.Max(); page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}
