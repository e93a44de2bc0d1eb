package http

import (
	"encoding/json"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"net/http"
	"strconv"
	"time"
)

const messageOK = "Request successful"

// Response is the envelope around every successful body.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Timestamp  string      `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Response{
		StatusCode: status,
		Message:    messageOK,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// PageFromQuery reads ?page= and ?limit=. Missing or malformed values are left zero.
func PageFromQuery(r *http.Request) dtos.PageDTO {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get(PageQuery))
	limit, _ := strconv.Atoi(q.Get(LimitQuery))
	return dtos.PageDTO{Page: page, Limit: limit}
}
