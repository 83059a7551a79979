package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/travel-ledger/internal/domain"
	"github.com/travel-ledger/internal/domain/repository"
	"github.com/travel-ledger/internal/pkg/errors"
)

const stampColumns = `
	id::text AS id, city, country, country_raw, venue, activity, category,
	event_date, lat, lng, color, image, points, created_at
`

type stampRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStampRepository(db *DB) repository.StampRepository {
	return &stampRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *stampRepository) Create(ctx context.Context, stamp *domain.Stamp) error {
	if stamp.ID == "" {
		stamp.ID = uuid.NewString()
	}

	query := `
		INSERT INTO stamps (
			id, city, country, country_raw, venue, activity, category,
			event_date, lat, lng, color, image, points
		) VALUES (
			:id, :city, :country, :country_raw, :venue, :activity, :category,
			:event_date, :lat, :lng, :color, :image, :points
		)
		RETURNING created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, stamp)
	if err != nil {
		r.logger.Error("Failed to create stamp", zap.String("id", stamp.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer rows.Close()

	if rows.Next() {
		var created sql.NullTime
		if err := rows.Scan(&created); err != nil {
			r.logger.Error("Failed to scan created stamp", zap.String("id", stamp.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
		if created.Valid {
			stamp.CreatedAt = &created.Time
		}
	}

	return rows.Err()
}

func (r *stampRepository) Update(ctx context.Context, stamp *domain.Stamp) error {
	if _, err := uuid.Parse(stamp.ID); err != nil {
		return errors.ErrStampNotFound
	}

	query := `
		UPDATE stamps SET
			city = :city, country = :country, country_raw = :country_raw,
			venue = :venue, activity = :activity, category = :category,
			event_date = :event_date, lat = :lat, lng = :lng, image = :image,
			updated_at = now()
		WHERE id = :id
	`

	res, err := r.db.NamedExecContext(ctx, query, stamp)
	if err != nil {
		r.logger.Error("Failed to update stamp", zap.String("id", stamp.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return r.requireAffected(res, stamp.ID)
}

func (r *stampRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrStampNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM stamps WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete stamp", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return r.requireAffected(res, id)
}

func (r *stampRepository) ClearImage(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.ErrStampNotFound
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE stamps SET image = '', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to clear stamp image", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return r.requireAffected(res, id)
}

func (r *stampRepository) GetByID(ctx context.Context, id string) (*domain.Stamp, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrStampNotFound
	}

	var stamp domain.Stamp
	err := r.db.GetContext(ctx, &stamp, `SELECT `+stampColumns+` FROM stamps WHERE id = $1`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrStampNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get stamp by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &stamp, nil
}

func (r *stampRepository) List(ctx context.Context) ([]domain.Stamp, error) {
	stamps := make([]domain.Stamp, 0)
	err := r.db.SelectContext(ctx, &stamps,
		`SELECT `+stampColumns+` FROM stamps ORDER BY created_at DESC, id`)
	if err != nil {
		r.logger.Error("Failed to list stamps", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stamps, nil
}

// UpdateCountries переписывает страну для пачки штампов одним запросом
func (r *stampRepository) UpdateCountries(ctx context.Context, country string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE stamps SET country = $1, updated_at = now() WHERE id = ANY($2::uuid[])`,
		country, pq.Array(ids),
	)
	if err != nil {
		r.logger.Error("Failed to update stamp countries",
			zap.String("country", country),
			zap.Int("count", len(ids)),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	r.logger.Info("Stamp countries updated",
		zap.String("country", country),
		zap.Int64("affected", affected))
	return affected, nil
}

func (r *stampRepository) requireAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.String("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrStampNotFound
	}
	return nil
}
