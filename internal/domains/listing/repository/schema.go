package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"realestate-listing-api/internal/domains/listing/model"
)

var schemaDDL = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS listings (
    id          UUID PRIMARY KEY,
    title       VARCHAR(%d)   NOT NULL,
    price       NUMERIC(18, 2) NOT NULL,
    description VARCHAR(%d),
    address     VARCHAR(%d)
);

CREATE UNIQUE INDEX IF NOT EXISTS ux_listings_title_address
    ON listings (title, COALESCE(address, ''));
`, model.TitleColumnMax, model.DescriptionColumnMax, model.AddressColumnMax)

// EnsureSchema tạo bảng listings nếu chưa có
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure listings schema: %w", err)
	}
	return nil
}
