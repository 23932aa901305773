package repository

import (
	"context"
	"fmt"
	"strings"

	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	pkgdb "github.com/hotspotid/salesledger/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() saledomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *saledomain.Sale) error {
	if err := db.WithContext(ctx).Create(sale).Error; err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return saledomain.ErrDuplicateSale
		}
		return err
	}
	return nil
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, f saledomain.Filter) ([]saledomain.Sale, error) {
	stmt := db.WithContext(ctx).Model(&saledomain.Sale{})

	if f.Year != 0 {
		stmt = stmt.Where(datePart(db, "year")+" = ?", f.Year)
	}
	if f.Month != 0 {
		stmt = stmt.Where(datePart(db, "month")+" = ?", f.Month)
	}
	if f.Day != 0 {
		stmt = stmt.Where(datePart(db, "day")+" = ?", f.Day)
	}
	if len(f.ExcludeComments) > 0 {
		stmt = stmt.Where("comment NOT IN ?", f.ExcludeComments)
	}
	// records without an agent code are not subject to directory membership
	stmt = stmt.Where("(agen_code = '' OR agen_code IN ?)", emptyAsNull(f.AllowedAgenCodes))
	if f.AgenCode != "" {
		stmt = stmt.Where("agen_code = ?", f.AgenCode)
	}

	var sales []saledomain.Sale
	if err := stmt.Order("sale_date ASC, id ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// emptyAsNull keeps gorm from rendering an invalid empty IN list.
func emptyAsNull(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	if len(out) == 0 {
		out = append(out, nil)
	}
	return out
}

// datePart returns the SQL expression extracting a date component from
// sale_date on the connected dialect.
func datePart(db *gorm.DB, part string) string {
	switch strings.ToLower(db.Dialector.Name()) {
	case "sqlite":
		fmtCode := map[string]string{"year": "%Y", "month": "%m", "day": "%d"}[part]
		return fmt.Sprintf("CAST(strftime('%s', sale_date) AS INTEGER)", fmtCode)
	case "mysql":
		return fmt.Sprintf("%s(sale_date)", strings.ToUpper(part))
	default:
		return fmt.Sprintf("EXTRACT(%s FROM sale_date)", strings.ToUpper(part))
	}
}
