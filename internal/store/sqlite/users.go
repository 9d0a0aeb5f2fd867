package sqlite

import (
	"context"
	"strings"

	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/store"
)

const userColumns = "id, name, about, avatar, email"

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var u models.User
	err := scanner.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email)
	return u, err
}

// CreateUser inserts u, relying on the unique index for email.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return invalidDocument(err)
	}
	id := store.NewID()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, about, avatar, email, password_hash) VALUES (?, ?, ?, ?, ?, ?)",
		id, u.Name, u.About, u.Avatar, u.Email, u.PasswordHash,
	)
	if err != nil {
		return translate(err)
	}
	u.ID = id
	return nil
}

// ListUsers returns every user.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindUserByID retrieves a single user by their ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// FindUsersByIDs retrieves the users that exist among ids.
func (s *Store) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindUserByEmail retrieves a single user by email, including the password hash.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+", password_hash FROM users WHERE email = ?", email)
	if err := row.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email, &u.PasswordHash); err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}

// UpdateUser applies upd to the user and returns the updated record.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	if err := upd.Validate(); err != nil {
		return models.User{}, invalidDocument(err)
	}

	var (
		sets []string
		args []interface{}
	)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.About != nil {
		sets = append(sets, "about = ?")
		args = append(args, *upd.About)
	}
	if upd.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *upd.Avatar)
	}
	if len(sets) == 0 {
		return s.FindUserByID(ctx, id)
	}
	args = append(args, id)

	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ? RETURNING "+userColumns, args...)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, translate(err)
	}
	return u, nil
}
