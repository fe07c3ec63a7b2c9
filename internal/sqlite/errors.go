package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hancomics/prodboard/internal/repository"
)

// The modernc driver exposes constraint failures only through the error
// string, so matching on the sqlite message text is the contract here.

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requireRow converts a zero-row update or delete into ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
