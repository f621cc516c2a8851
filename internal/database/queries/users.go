package queries

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vetlab-project/vetlab-server/internal/database"
	"github.com/vetlab-project/vetlab-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrDuplicateUsername is returned when creating an account whose username
// is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs the same bcrypt work as a real mismatch.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserQueries struct {
	db *database.DB
}

func NewUserQueries(db *database.DB) *UserQueries {
	return &UserQueries{db: db}
}

// Create inserts a new user with the password hashed
func (q *UserQueries) Create(username, displayName, password, role string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO usuarios (
			id, usuario, nombre, clave_hash, rol, creado
		) VALUES (
			:id, :usuario, :nombre, :clave_hash, :rol, :creado
		)
	`

	if _, err := q.db.NamedExec(query, user); err != nil {
		wrapped := database.WrapError("create user", err)
		if database.IsConstraintViolation(wrapped) {
			return nil, ErrDuplicateUsername
		}
		return nil, wrapped
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (q *UserQueries) GetByUsername(username string) (*models.User, error) {
	var user models.User
	query := q.db.Rebind(`SELECT * FROM usuarios WHERE usuario = ?`)
	if err := q.db.Get(&user, query, username); err != nil {
		return nil, database.WrapError("get user", err)
	}
	return &user, nil
}

// VerifyCredentials checks a username/password pair. Unknown usernames and
// bad passwords both come back as ErrInvalidCredentials; anything else is a
// storage failure.
func (q *UserQueries) VerifyCredentials(username, password string) (*models.User, error) {
	user, err := q.GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best-effort; a failed timestamp write must not block the login.
	q.UpdateLastLogin(user.ID)

	user.PasswordHash = ""
	return user, nil
}

// UpdateLastLogin updates the user's last login timestamp
func (q *UserQueries) UpdateLastLogin(id uuid.UUID) error {
	query := q.db.Rebind(`UPDATE usuarios SET ultimo_acceso = ? WHERE id = ?`)
	_, err := q.db.Exec(query, time.Now().UTC(), id)
	return database.WrapError("update last login", err)
}

// EnsureAdmin guarantees an account with the configured admin username
// exists. When forceSync is set and the account already exists, only its
// password hash is rewritten; nothing else about the account changes.
func (q *UserQueries) EnsureAdmin(username, displayName, password string, forceSync bool) error {
	existing, err := q.GetByUsername(username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if existing == nil {
		_, err := q.Create(username, displayName, password, models.RoleAdmin)
		return err
	}

	if !forceSync {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := q.db.Rebind(`UPDATE usuarios SET clave_hash = ? WHERE usuario = ?`)
	_, err = q.db.Exec(query, string(hashedPassword), username)
	return database.WrapError("sync admin password", err)
}
