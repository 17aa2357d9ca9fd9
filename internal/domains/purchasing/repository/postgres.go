package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/purchasing/model"
	"shopdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a postgres-backed purchase order repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// CreateOrder writes the order header and every line in one transaction.
// The unique index on (tenant_id, idempotency_key) turns a replayed auto
// execution into ErrDuplicateOrder instead of a second order.
func (r *postgresRepository) CreateOrder(ctx context.Context, order *model.PurchaseOrder) error {
	if len(order.Lines) == 0 {
		return model.ErrEmptyOrder
	}
	order.RecalculateTotal()

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO purchase_orders
				(id, tenant_id, status, source, supplier, total_cost, idempotency_key, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			 RETURNING created_at, updated_at`,
			order.ID, order.TenantID, order.Status, order.Source,
			order.Supplier, order.TotalCost, order.IdempotencyKey,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return model.ErrDuplicateOrder
			}
			return fmt.Errorf("failed to insert purchase order: %w", err)
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			line.OrderID = order.ID
			_, err = tx.Exec(ctx,
				`INSERT INTO purchase_order_lines (id, order_id, item_id, item_name, quantity, unit_cost)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				line.ID, line.OrderID, line.ItemID, line.ItemName, line.Quantity, line.UnitCost,
			)
			if err != nil {
				return fmt.Errorf("failed to insert purchase order line: %w", err)
			}
		}
		return nil
	})
}

const orderColumns = `id, tenant_id, status, source, supplier, total_cost, idempotency_key, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := row.Scan(
		&order.ID, &order.TenantID, &order.Status, &order.Source,
		&order.Supplier, &order.TotalCost, &order.IdempotencyKey,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepository) ListOrders(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.PurchaseOrder, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchase_orders WHERE tenant_id = $1`, tenantID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM purchase_orders WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		orderColumns,
	)
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []model.PurchaseOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read purchase orders: %w", err)
	}

	if err := r.attachLines(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchase_orders WHERE tenant_id = $1 AND id = $2`, orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewOrderNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	orders := []model.PurchaseOrder{*order}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE purchase_orders SET status = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewOrderNotFoundError(id)
	}
	return nil
}

func (r *postgresRepository) attachLines(ctx context.Context, orders []model.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]*model.PurchaseOrder, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = &orders[i]
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, item_id, item_name, quantity, unit_cost
		 FROM purchase_order_lines WHERE order_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to list purchase order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line model.PurchaseOrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ItemID, &line.ItemName, &line.Quantity, &line.UnitCost); err != nil {
			return fmt.Errorf("failed to scan purchase order line: %w", err)
		}
		if order, ok := index[line.OrderID]; ok {
			order.Lines = append(order.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read purchase order lines: %w", err)
	}
	return nil
}
