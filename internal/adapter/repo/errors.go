package repo

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	domain "github.com/renanbmello/api-ecommerce/internal/entity"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// translate maps driver errors onto the domain taxonomy. notFound is the
// entity-specific error returned for sql.ErrNoRows.
func translate(err error, notFound *domain.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDuplicateEntry:
			return domain.ErrUniqueViolation
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
			return domain.ErrForeignKey
		}
	}
	return err
}
