package repository

import (
	"database/sql"
	"time"

	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/lib/pq"
)

type AccountRepository interface {
	List(userID string) ([]models.AdAccount, error)
	Get(userID, id string) (*models.AdAccount, error)
	Create(account *models.AdAccount) (*models.AdAccount, error)
	UpdateToken(userID, id, accessToken string, expiresAt *time.Time) (*models.AdAccount, error)
	Delete(userID, id string) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) List(userID string) ([]models.AdAccount, error) {
	const query = `
		SELECT id, user_id, remote_id, name, access_token, token_expires_at, permissions, is_active, created_at, updated_at
		FROM ads.ad_accounts
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.AdAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) Get(userID, id string) (*models.AdAccount, error) {
	const query = `
		SELECT id, user_id, remote_id, name, access_token, token_expires_at, permissions, is_active, created_at, updated_at
		FROM ads.ad_accounts
		WHERE id = $1 AND user_id = $2`
	account, err := scanAccount(r.db.QueryRow(query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) Create(account *models.AdAccount) (*models.AdAccount, error) {
	const query = `
		INSERT INTO ads.ad_accounts (user_id, remote_id, name, access_token, token_expires_at, permissions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		account.UserID,
		account.RemoteID,
		account.Name,
		account.AccessToken,
		account.TokenExpiresAt,
		pq.Array(account.Permissions),
		account.IsActive,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) UpdateToken(userID, id, accessToken string, expiresAt *time.Time) (*models.AdAccount, error) {
	const query = `
		UPDATE ads.ad_accounts
		SET access_token = $1, token_expires_at = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, remote_id, name, access_token, token_expires_at, permissions, is_active, created_at, updated_at`
	account, err := scanAccount(r.db.QueryRow(query, accessToken, expiresAt, id, userID))
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepository) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM ads.ad_accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanAccount(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.AdAccount, error) {
	var (
		account     models.AdAccount
		expiresAt   sql.NullTime
		permissions pq.StringArray
	)
	if err := scanner.Scan(
		&account.ID,
		&account.UserID,
		&account.RemoteID,
		&account.Name,
		&account.AccessToken,
		&expiresAt,
		&permissions,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		account.TokenExpiresAt = &t
	}
	account.Permissions = permissions
	return &account, nil
}
