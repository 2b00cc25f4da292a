package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/adlaunch/adlaunch-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(username, email, name, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
	GetUserByID(userID string) (models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (u *userRepository) CreateUser(username, email, name, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if username == "" || email == "" {
		return models.User{}, errors.New("username and email are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	query := `
		INSERT INTO ads.users (username, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err = u.db.QueryRow(query, user.Username, user.Email, user.Name, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (u *userRepository) AuthenticateUser(username, password string) (models.User, error) {
	var user models.User
	const query = `
		SELECT id, username, email, name, password_hash, created_at
		FROM ads.users
		WHERE username = $1`
	err := u.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, errors.New("invalid credentials")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.New("invalid credentials")
	}
	return user, nil
}

func (u *userRepository) GetUserByID(userID string) (models.User, error) {
	var user models.User
	const query = `
		SELECT id, username, email, name, password_hash, created_at
		FROM ads.users
		WHERE id = $1`
	err := u.db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
