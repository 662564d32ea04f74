package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

const userColumns = `id, last_name, first_name, email, phone, role, password_hash,
       active, verified, verification_token, verification_expires, created_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.LastName, &u.FirstName, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
		&u.Active, &u.Verified, &u.VerificationToken, &u.VerificationExpires, &u.CreatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (last_name, first_name, email, phone, role, password_hash,
                       active, verified, verification_token, verification_expires)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id, created_at`
	created := *user
	err := r.storage.db().QueryRow(ctx, query,
		user.LastName, user.FirstName, user.Email, user.Phone, user.Role, user.PasswordHash,
		user.Active, user.Verified, user.VerificationToken, user.VerificationExpires,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	const query = `UPDATE users SET last_name=$1, first_name=$2, email=$3, phone=$4, role=$5,
                       password_hash=$6, active=$7, verified=$8, verification_token=$9, verification_expires=$10
                   WHERE id=$11`
	tag, err := r.storage.db().Exec(ctx, query,
		user.LastName, user.FirstName, user.Email, user.Phone, user.Role, user.PasswordHash,
		user.Active, user.Verified, user.VerificationToken, user.VerificationExpires, user.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(tag, "user", user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.db().QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapRowError(err, "user", id)
	}
	return &u, nil
}

func (r *userRepository) getBy(ctx context.Context, column, value string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + `=$1`
	u, err := scanUser(r.storage.db().QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.getBy(ctx, "phone", phone)
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return r.getBy(ctx, "verification_token", token)
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	query, args, err := paginate(psql.Select(userColumns).From("users").OrderBy("id"), limit, offset).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.db().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows pgx.Rows) (model.User, error) { return scanUser(rows) })
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	query := `UPDATE users SET active=$1 WHERE id=$2 RETURNING ` + userColumns
	u, err := scanUser(r.storage.db().QueryRow(ctx, query, active, id))
	if err != nil {
		return nil, mapRowError(err, "user", id)
	}
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.db().Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag, "user", id)
}
