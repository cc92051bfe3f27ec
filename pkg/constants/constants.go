package constants

type ContextKey string

const (
	TxKey         ContextKey = "tx"
	PoolKey       ContextKey = "pool"
	TransactorKey ContextKey = "transactor"
	LoggerKey     ContextKey = "logger"
)
