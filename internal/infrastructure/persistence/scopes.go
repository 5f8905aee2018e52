package persistence

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// paginate applies LIMIT/OFFSET for the filter's page
func paginate(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Page > 0 && filter.PageSize > 0 {
			return db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// containsAny builds a case-insensitive "column contains term" OR group.
// LOWER(..) LIKE keeps the query portable between PostgreSQL and SQLite.
func containsAny(term string, columns ...string) (string, []any) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		parts[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return strings.Join(parts, " OR "), args
}

// textSearch matches a free text term against text columns, decimal columns when
// the term is a number and integer columns when the term is an integer
type textSearch struct {
	Text     []string
	Decimals []string
	Integers []string
	Equals   []string
}

func (s textSearch) scope(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		where, args := containsAny(term, s.Text...)
		if len(s.Decimals) > 0 {
			if n, err := decimal.NewFromString(term); err == nil {
				for _, c := range s.Decimals {
					where += " OR " + c + " = ?"
					args = append(args, n)
				}
			}
		}
		if len(s.Integers) > 0 {
			if n, err := strconv.ParseInt(term, 10, 64); err == nil {
				for _, c := range s.Integers {
					where += " OR " + c + " = ?"
					args = append(args, n)
				}
			}
		}
		for _, c := range s.Equals {
			where += " OR " + c + " = ?"
			args = append(args, strings.ToLower(term))
		}
		return db.Where("("+where+")", args...)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// translateNotFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// domainModel is a persistence model convertible to its domain type D
type domainModel[M, D any] interface {
	*M
	ToDomain() *D
}

// first loads the first row matching cond and converts it to the domain type
func first[M, D any, PM domainModel[M, D]](db *gorm.DB, cond string, args ...any) (*D, error) {
	model := PM(new(M))
	if err := db.Where(cond, args...).First(model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}
