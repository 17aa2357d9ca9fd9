package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a postgres-backed inventory repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const itemColumns = `id, tenant_id, name, sku, quantity, reorder_point, unit_price, unit_cost, category, supplier, location, created_at, updated_at`

func scanItem(row pgx.Row) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := row.Scan(
		&item.ID, &item.TenantID, &item.Name, &item.SKU,
		&item.Quantity, &item.ReorderPoint, &item.UnitPrice, &item.UnitCost,
		&item.Category, &item.Supplier, &item.Location,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Normalize()
	return &item, nil
}

func (r *postgresRepository) ListItems(ctx context.Context, tenantID uuid.UUID) ([]model.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE tenant_id = $1 ORDER BY name ASC`, itemColumns)

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) GetItemByID(ctx context.Context, tenantID, id uuid.UUID) (*model.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE tenant_id = $1 AND id = $2`, itemColumns)

	item, err := scanItem(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewItemNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	query := `INSERT INTO inventory_items
		(id, tenant_id, name, sku, quantity, reorder_point, unit_price, unit_cost, category, supplier, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.ID, item.TenantID, item.Name, item.SKU,
		item.Quantity, item.ReorderPoint, item.UnitPrice, item.UnitCost,
		item.Category, item.Supplier, item.Location,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sku=%s", model.ErrSKUAlreadyExists, item.SKU)
		}
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateItem(ctx context.Context, item *model.InventoryItem) error {
	query := `UPDATE inventory_items
		SET name=$3, quantity=$4, reorder_point=$5, unit_price=$6, unit_cost=$7,
		    category=$8, supplier=$9, location=$10, updated_at=NOW()
		WHERE tenant_id=$1 AND id=$2
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.TenantID, item.ID, item.Name,
		item.Quantity, item.ReorderPoint, item.UnitPrice, item.UnitCost,
		item.Category, item.Supplier, item.Location,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewItemNotFoundError(item.ID)
		}
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteItem(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.NewItemNotFoundError(id)
	}
	return nil
}

// RecordMovement appends the audit row and applies the delta in one
// transaction so the item count and its history never diverge.
func (r *postgresRepository) RecordMovement(ctx context.Context, movement *model.StockMovement) error {
	delta := movement.Quantity
	if movement.Direction == model.MovementOutbound {
		delta = -delta
	}

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE inventory_items SET quantity = quantity + $3, updated_at = NOW() WHERE tenant_id=$1 AND id=$2`,
			movement.TenantID, movement.ItemID, delta,
		)
		if err != nil {
			return fmt.Errorf("failed to apply movement delta: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.NewItemNotFoundError(movement.ItemID)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO stock_movements (id, tenant_id, item_id, direction, quantity, note, occurred_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			movement.ID, movement.TenantID, movement.ItemID,
			movement.Direction, movement.Quantity, movement.Note, movement.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stock movement: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) DailyUsageRates(ctx context.Context, tenantID uuid.UUID, windowDays int) (map[uuid.UUID]float64, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	query := `SELECT item_id, SUM(quantity)::float8 / $2
		FROM stock_movements
		WHERE tenant_id = $1
		  AND direction = 'outbound'
		  AND occurred_at >= NOW() - make_interval(days => $2)
		GROUP BY item_id`

	rows, err := r.pool.Query(ctx, query, tenantID, windowDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute usage rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[uuid.UUID]float64)
	for rows.Next() {
		var itemID uuid.UUID
		var rate float64
		if err := rows.Scan(&itemID, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan usage rate: %w", err)
		}
		rates[itemID] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage rates: %w", err)
	}
	return rates, nil
}
