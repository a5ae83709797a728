package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL (SQLSTATE).
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// postgresDuplicate сообщает, нарушено ли ограничение уникальности.
func postgresDuplicate(err error) bool {
	return pgErrorCode(err) == uniqueViolation
}

// postgresForeignKey сообщает, нарушен ли внешний ключ (несуществующая ссылка или удаление используемой строки).
func postgresForeignKey(err error) bool {
	return pgErrorCode(err) == foreignKeyViolation
}
