package booking

// Переиспользуем интерфейсы из dbmetrics для работы с БД
import (
	"github.com/salonhq/booking-engine/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
