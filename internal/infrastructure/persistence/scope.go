package persistence

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// CompanyScope restricts a query to one company's rows
func CompanyScope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// Paginate applies offset and the one-extra-row fetch limit
func Paginate(page shared.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.FetchLimit())
	}
}

// likeEscape names the escape character explicitly; sqlite has no default one
const likeEscape = ` ESCAPE '\'`

// ContainsFold matches column case-insensitively against a substring.
// LOWER/LIKE behaves the same on postgres and sqlite.
func ContainsFold(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ?"+likeEscape, containsPattern(value))
	}
}

// containsPattern lower-cases value and escapes its LIKE wildcards
func containsPattern(value string) string {
	return "%" + escapeLike(strings.ToLower(value)) + "%"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// notFound maps gorm's missing-row error to a named domain error
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return err
}
