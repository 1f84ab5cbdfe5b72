package postgres

import (
	"database/sql"
	"reporter/pkg/domain"
)

// PgCatalogItem mirrors a row of the videojuegos table. Column names stay in
// the database's original Spanish; the domain layer uses English names.
type PgCatalogItem struct {
	ID     int64           `db:"id" goqu:"skipinsert"`
	Nombre string          `db:"nombre"`
	Genero sql.NullString  `db:"genero"`
	Anio   sql.NullInt32   `db:"anio"`
	Precio sql.NullFloat64 `db:"precio"`
}

// PgRecipient mirrors a row of the destinatarios table.
type PgRecipient struct {
	Cedula string `db:"cedula"`
	Email  string `db:"email"`
}

func (p *PgCatalogItem) ToDomain() domain.CatalogItem {
	item := domain.CatalogItem{
		ID:   p.ID,
		Name: p.Nombre,
	}
	if p.Genero.Valid {
		g := p.Genero.String
		item.Genre = &g
	}
	if p.Anio.Valid {
		y := int(p.Anio.Int32)
		item.Year = &y
	}
	if p.Precio.Valid {
		pr := p.Precio.Float64
		item.Price = &pr
	}

	return item
}

func (p *PgRecipient) ToDomain() domain.Recipient {
	return domain.Recipient{
		Cedula: p.Cedula,
		Email:  p.Email,
	}
}

func pgItemsToDomain(items []PgCatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToDomain())
	}

	return out
}

func pgRecipientsToDomain(recipients []PgRecipient) []domain.Recipient {
	out := make([]domain.Recipient, 0, len(recipients))
	for i := range recipients {
		out = append(out, recipients[i].ToDomain())
	}

	return out
}
