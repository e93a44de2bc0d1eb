package http

const (
	MerchantIDParam    = "merchantID"
	TransactionIDParam = "transactionID"

	MerchantIDQuery = "merchantId"
	PageQuery       = "page"
	LimitQuery      = "limit"

	AuthorizationHeader  = "Authorization"
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotentReplay     = "Idempotent-Replayed"
)
