package postgres

import (
	"context"
	"strconv"

	"reporter/pkg/domain"
	"reporter/pkg/serrors"
	"reporter/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const (
	catalogTable    = "videojuegos"
	recipientsTable = "destinatarios"
)

// CatalogItems returns catalog rows matching the filter, ordered by id
// ascending. A numeric term matches the id exactly; any other non-empty term
// matches a case-insensitive substring of the name.
func (p *PgSQL) CatalogItems(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	ds := p.Builder.From(catalogTable).
		Select(&PgCatalogItem{}).
		Order(goqu.I("id").Asc())

	if filter.Term != "" {
		if id, err := strconv.ParseInt(filter.Term, 10, 64); err == nil {
			ds = ds.Where(goqu.I("id").Eq(id))
		} else {
			ds = ds.Where(goqu.I("nombre").ILike("%" + filter.Term + "%"))
		}
	}
	if filter.Limit > 0 {
		ds = ds.Limit(filter.Limit)
	}

	var rows []PgCatalogItem
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, serrors.Wrap(serrors.ErrDataAccess, err, "could not fetch catalog items from pg")
	}

	return pgItemsToDomain(rows), nil
}

// Recipients returns all delivery recipients. No filter, no pagination.
func (p *PgSQL) Recipients(ctx context.Context) ([]domain.Recipient, error) {
	var rows []PgRecipient
	if err := p.Builder.From(recipientsTable).
		Select(&PgRecipient{}).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, serrors.Wrap(serrors.ErrDataAccess, err, "could not fetch recipients from pg")
	}

	return pgRecipientsToDomain(rows), nil
}

// Ensure PgSQL conforms to the storage interface at compile time.
var _ storage.Storage = (*PgSQL)(nil)
