package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quickbite/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, customer_id, restaurant_id, restaurant_name, subtotal, delivery_fee,
	service_fee, discount, promo_code, total, delivery_address, notes, status,
	created_at, updated_at, estimated_delivery_time`

func (r *PostgresOrderRepository) Create(ctx context.Context, o *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		o.ID, o.CustomerID, o.RestaurantID, o.RestaurantName, o.Subtotal, o.DeliveryFee,
		o.ServiceFee, o.Discount, o.PromoCode, o.Total, o.DeliveryAddress, o.Notes, o.Status,
		o.CreatedAt, o.UpdatedAt, o.EstimatedDeliveryTime)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		customizations, err := json.Marshal(it.Customizations)
		if err != nil {
			return fmt.Errorf("encode customizations: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, position, item_id, name, price, quantity, customizations, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.ID, i, it.ID, it.Name, it.Price, it.Quantity, customizations, it.TotalPrice)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	o, err := pgx.CollectOneRow(rows, scanOrder)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	orders := []models.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PostgresOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresOrderRepository) UpdateStatusGuard(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, at, id, from)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (r *PostgresOrderRepository) DeleteByCustomer(ctx context.Context, customerID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE customer_id = $1`, customerID)
	return err
}

func (r *PostgresOrderRepository) attachItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
		orders[i].Items = []models.OrderItem{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT order_id, item_id, name, price, quantity, customizations, total_price
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it models.OrderItem
		var customizations []byte
		if err := rows.Scan(&orderID, &it.ID, &it.Name, &it.Price, &it.Quantity, &customizations, &it.TotalPrice); err != nil {
			return err
		}
		if err := json.Unmarshal(customizations, &it.Customizations); err != nil {
			return fmt.Errorf("decode customizations: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}

func scanOrder(row pgx.CollectableRow) (models.Order, error) {
	var o models.Order
	var status string
	err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.RestaurantName, &o.Subtotal,
		&o.DeliveryFee, &o.ServiceFee, &o.Discount, &o.PromoCode, &o.Total, &o.DeliveryAddress,
		&o.Notes, &status, &o.CreatedAt, &o.UpdatedAt, &o.EstimatedDeliveryTime)
	o.Status = models.OrderStatus(status)
	return o, err
}
