package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/database"
	"github.com/deppfellow/rpos-gateway/internal/model"
	"github.com/deppfellow/rpos-gateway/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const catalogTable = "itemmasterdetails"

// CatalogRepository pages through the item master view.
type CatalogRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewCatalogRepository(db DBTX, timeout time.Duration) *CatalogRepository {
	return &CatalogRepository{db: db, timeout: timeout}
}

// buildCatalogQuery renders the SELECT for q. Column names come from the
// allow-list in model and are the only text interpolated into the SQL.
func buildCatalogQuery(q model.CatalogQuery) (string, pgx.NamedArgs) {
	cols := make([]string, len(q.Fields))
	for i, f := range q.Fields {
		cols[i] = fmt.Sprintf(`%s AS "%s"`, strings.ToLower(f), f)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM " + catalogTable)

	args := pgx.NamedArgs{
		"limit":  q.Limit,
		"offset": q.Offset,
	}

	if q.Search != "" {
		sb.WriteString(" WHERE (LOWER(itemname) LIKE @search OR LOWER(itemnameara) LIKE @search OR LOWER(barcode) LIKE @search)")
		args["search"] = "%" + strings.ToLower(q.Search) + "%"
	}

	sb.WriteString(" ORDER BY itemname, itemcode LIMIT @limit OFFSET @offset")

	return sb.String(), args
}

// List returns one page of catalog rows with values converted for JSON.
func (r *CatalogRepository) List(ctx context.Context, q model.CatalogQuery) (*model.CatalogPage, error) {
	const op = "itemmasterdetails.list"

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args := buildCatalogQuery(q)

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, sqlerr.Wrap(op, catalogTable, err)
	}
	defer rows.Close()

	data := make([]map[string]any, 0, q.Limit)
	for rows.Next() {
		item, err := database.RowToWire(rows)
		if err != nil {
			return nil, sqlerr.Wrap(op, catalogTable, err)
		}
		data = append(data, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.Wrap(op, catalogTable, err)
	}

	return &model.CatalogPage{
		Data:   data,
		Count:  len(data),
		Limit:  q.Limit,
		Offset: q.Offset,
		Fields: q.Fields,
	}, nil
}
