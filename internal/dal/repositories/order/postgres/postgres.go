package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

var orderColumns = []string{
	"id",
	"merchant_id",
	"items",
	"total",
	"user_address",
	"user_phone",
	"status",
	"created_at",
	"status_updated_at",
	"expires_at",
	"merchant_sla_deadline",
	"assembly_deadline",
}

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID                  string     `db:"id"`
	MerchantID          string     `db:"merchant_id"`
	Items               []byte     `db:"items"`
	Total               int64      `db:"total"`
	UserAddress         string     `db:"user_address"`
	UserPhone           string     `db:"user_phone"`
	Status              string     `db:"status"`
	CreatedAt           time.Time  `db:"created_at"`
	StatusUpdatedAt     time.Time  `db:"status_updated_at"`
	ExpiresAt           *time.Time `db:"expires_at"`
	MerchantSLADeadline *time.Time `db:"merchant_sla_deadline"`
	AssemblyDeadline    *time.Time `db:"assembly_deadline"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	var items []order.Item
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return &order.Order{
		ID:                  o.ID,
		MerchantID:          o.MerchantID,
		Items:               items,
		Total:               o.Total,
		UserAddress:         o.UserAddress,
		UserPhone:           o.UserPhone,
		Status:              status,
		CreatedAt:           o.CreatedAt,
		StatusUpdatedAt:     o.StatusUpdatedAt,
		ExpiresAt:           o.ExpiresAt,
		MerchantSLADeadline: o.MerchantSLADeadline,
		AssemblyDeadline:    o.AssemblyDeadline,
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) (*OrderDal, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}

	return &OrderDal{
		ID:                  o.ID,
		MerchantID:          o.MerchantID,
		Items:               items,
		Total:               o.Total,
		UserAddress:         o.UserAddress,
		UserPhone:           o.UserPhone,
		Status:              o.Status.String(),
		CreatedAt:           o.CreatedAt,
		StatusUpdatedAt:     o.StatusUpdatedAt,
		ExpiresAt:           o.ExpiresAt,
		MerchantSLADeadline: o.MerchantSLADeadline,
		AssemblyDeadline:    o.AssemblyDeadline,
	}, nil
}

// OrderRepository implements the order repository for PostgreSQL.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// Insert appends a new order.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal, err := OrderDalFromModel(&o)
	if err != nil {
		return order.Order{}, err
	}

	query, args, err := sq.Insert("orders").
		Columns(orderColumns...).
		Values(
			dal.ID,
			dal.MerchantID,
			dal.Items,
			dal.Total,
			dal.UserAddress,
			dal.UserPhone,
			dal.Status,
			dal.CreatedAt,
			dal.StatusUpdatedAt,
			dal.ExpiresAt,
			dal.MerchantSLADeadline,
			dal.AssemblyDeadline,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// GetByID returns a single order by id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	row := r.client.Pool().QueryRow(ctx, query, args...)

	return scanOrder(row)
}

// Query lists orders newest first, optionally filtered by merchant.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.MerchantID != "" && filter.MerchantID != "all" {
		builder = builder.Where(sq.Eq{"merchant_id": filter.MerchantID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus applies the patch only if the stored status still equals from.
func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from order.Status,
	patch order.StatusPatch,
) (*order.Order, error) {
	builder := sq.Update("orders").
		Set("status", patch.Status.String()).
		Set("status_updated_at", patch.StatusUpdatedAt).
		Where(sq.Eq{"id": id, "status": from.String()}).
		Suffix("RETURNING " + joinColumns(orderColumns)).
		PlaceholderFormat(sq.Dollar)

	if patch.UserPhone != nil {
		builder = builder.Set("user_phone", *patch.UserPhone)
	}
	if patch.MerchantSLADeadline != nil {
		builder = builder.Set("merchant_sla_deadline", *patch.MerchantSLADeadline)
	}
	if patch.AssemblyDeadline != nil {
		builder = builder.Set("assembly_deadline", *patch.AssemblyDeadline)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	row := r.client.Pool().QueryRow(ctx, query, args...)
	model, err := scanOrder(row)
	if err == nil {
		return model, nil
	}
	if !errors.Is(err, order.ErrNotFound) {
		return nil, err
	}

	// The conditional update matched nothing: either the order is gone or
	// someone else already moved it. Re-read to tell the two apart.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return current, order.ErrStatusConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.ID,
		&dal.MerchantID,
		&dal.Items,
		&dal.Total,
		&dal.UserAddress,
		&dal.UserPhone,
		&dal.Status,
		&dal.CreatedAt,
		&dal.StatusUpdatedAt,
		&dal.ExpiresAt,
		&dal.MerchantSLADeadline,
		&dal.AssemblyDeadline,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	return model, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
