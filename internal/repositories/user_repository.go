package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) EmailExists(ctx context.Context, db database.DBTX, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contact_information WHERE email = $1)`

	var exists bool
	if err := db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) CreateContact(ctx context.Context, db database.DBTX, contact *models.ContactInfo) error {
	contact.Prepare()

	query := `
		INSERT INTO contact_information (email, website)
		VALUES ($1, $2)
		RETURNING contact_id
	`

	return db.QueryRow(ctx, query, contact.Email, contact.Website).Scan(&contact.ID)
}

func (r *UserRepository) Create(ctx context.Context, db database.DBTX, user *models.User) error {
	user.Prepare()

	query := `
		INSERT INTO users (first_name, middle_name, last_name, about, password_hash, contact_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, created_at
	`

	return db.QueryRow(ctx, query,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.About,
		user.PasswordHash,
		user.ContactID,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) FindUserByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT user_id, first_name, middle_name, last_name, about, password_hash, contact_id, created_at
		FROM users WHERE user_id = $1
	`

	var user models.User
	err := db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.About,
		&user.PasswordHash,
		&user.ContactID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, noRowsAsNil(err)
	}

	return &user, nil
}

// FindCredentialsByEmail returns the user owning email and the contact row,
// or nil when no account uses it.
func (r *UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (*models.User, *models.ContactInfo, error) {
	query := `
		SELECT u.user_id, u.first_name, u.middle_name, u.last_name, u.about, u.password_hash,
		       u.contact_id, u.created_at, c.email, c.website
		FROM users u
		JOIN contact_information c ON u.contact_id = c.contact_id
		WHERE c.email = $1
	`

	var user models.User
	var contact models.ContactInfo
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.About,
		&user.PasswordHash,
		&user.ContactID,
		&user.CreatedAt,
		&contact.Email,
		&contact.Website,
	)
	if err != nil {
		return nil, nil, noRowsAsNil(err)
	}
	contact.ID = user.ContactID

	return &user, &contact, nil
}

// GetDetails returns the identity and contact of a user, or nil.
func (r *UserRepository) GetDetails(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.UserDetails, error) {
	query := `
		SELECT u.user_id, u.first_name, u.middle_name, u.last_name, u.about, c.email, c.website
		FROM users u
		JOIN contact_information c ON u.contact_id = c.contact_id
		WHERE u.user_id = $1
	`

	var d models.UserDetails
	err := db.QueryRow(ctx, query, id).Scan(
		&d.UserID,
		&d.FirstName,
		&d.MiddleName,
		&d.LastName,
		&d.About,
		&d.Email,
		&d.Website,
	)
	if err != nil {
		return nil, noRowsAsNil(err)
	}

	return &d, nil
}

// UpdateProfile applies the non-nil name/about fields and reports whether
// the user exists.
func (r *UserRepository) UpdateProfile(ctx context.Context, db database.DBTX, id uuid.UUID, firstName, middleName, lastName, about *string) (bool, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    middle_name = COALESCE($3, middle_name),
		    last_name = COALESCE($4, last_name),
		    about = COALESCE($5, about)
		WHERE user_id = $1
	`

	tag, err := db.Exec(ctx, query, id, firstName, middleName, lastName, about)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, db database.DBTX, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE user_id = $1`

	tag, err := db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

// LockContactID locks the user row for the rest of the transaction and
// returns its contact id. It returns ErrNoRows for an unknown user.
func (r *UserRepository) LockContactID(ctx context.Context, db database.DBTX, id uuid.UUID) (uuid.UUID, error) {
	query := `SELECT contact_id FROM users WHERE user_id = $1 FOR UPDATE`

	var contactID uuid.UUID
	if err := db.QueryRow(ctx, query, id).Scan(&contactID); err != nil {
		return uuid.Nil, err
	}
	return contactID, nil
}

func (r *UserRepository) DeleteContact(ctx context.Context, db database.DBTX, contactID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM contact_information WHERE contact_id = $1`, contactID); err != nil {
		return fmt.Errorf("failed to delete contact information: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteInstitutionLinks(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM user_institutions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user institutions: %w", err)
	}
	return nil
}

// LinkInstitution records that userID has studied at institutionID.
func (r *UserRepository) LinkInstitution(ctx context.Context, db database.DBTX, userID, institutionID uuid.UUID) error {
	query := `
		INSERT INTO user_institutions (user_id, institution_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := db.Exec(ctx, query, userID, institutionID); err != nil {
		return fmt.Errorf("failed to link institution: %w", err)
	}
	return nil
}

// PruneInstitutionLink drops the user/institution link once no education
// entry of the user refers to the institution anymore.
func (r *UserRepository) PruneInstitutionLink(ctx context.Context, db database.DBTX, userID, institutionID uuid.UUID) error {
	query := `
		DELETE FROM user_institutions ui
		WHERE ui.user_id = $1 AND ui.institution_id = $2
		  AND NOT EXISTS (
		    SELECT 1 FROM education_details ed
		    WHERE ed.user_id = $1 AND ed.institution_id = $2
		  )
	`
	if _, err := db.Exec(ctx, query, userID, institutionID); err != nil {
		return fmt.Errorf("failed to prune institution link: %w", err)
	}
	return nil
}

func (r *UserRepository) InstitutionIDs(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, `SELECT institution_id FROM user_institutions WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *UserRepository) CountContacts(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_information`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
