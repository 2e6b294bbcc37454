package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation  = "23505"
	codeCheckViolation   = "23514"
	codeFKViolation      = "23503"
	codeLockNotAvailable = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isLockTimeout lock_timeout vencido mientras se esperaba un FOR UPDATE (55P03).
func isLockTimeout(err error) bool {
	return pgCode(err) == codeLockNotAvailable
}

// isCheckViolation CHECK (stock >= 0) u otro constraint de validación (23514).
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isForeignKeyViolation fila referenciada por ventas o movimientos (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeFKViolation
}
