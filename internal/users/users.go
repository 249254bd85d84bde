// Package users manages dashboard accounts and credentials.
package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Roles, ordered by privilege.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
	RoleViewer  = "viewer"
)

var roleHierarchy = map[string]int{
	RoleAdmin:   4,
	RoleManager: 3,
	RoleUser:    2,
	RoleViewer:  1,
}

// User is a dashboard account. Every activity row and contact rollup is scoped
// to the owning user's ID.
type User struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `json:"name"`
	Email             string `gorm:"uniqueIndex" json:"email"`
	EncryptedPassword string `json:"-"`
	Role              string `gorm:"default:user" json:"role"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ErrUserExists is returned when attempting to create a user that already exists.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidCredentials is returned when email/password authentication fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = gorm.ErrRecordNotFound

// FindByEmail retrieves a user by email.
func FindByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID retrieves a user by ID.
func FindByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new user with the supplied credentials. It returns
// ErrUserExists if the email is already taken.
func Create(db *gorm.DB, name, email, password, role string) (*User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	if _, ok := roleHierarchy[role]; !ok {
		role = RoleUser
	}

	if _, err := FindByEmail(db, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := User{
		Name:              name,
		Email:             email,
		EncryptedPassword: string(hashedPassword),
		Role:              role,
	}
	if err := db.Create(&newUser).Error; err != nil {
		return nil, err
	}
	return &newUser, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
func Authenticate(db *gorm.DB, email, password string) (*User, error) {
	user, err := FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword updates a user's password given their email.
func ChangePassword(db *gorm.DB, email, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	user, err := FindByEmail(db, email)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Model(user).Update("encrypted_password", string(hashedPassword)).Error
}

// HasPermission reports whether the user's role meets the required role.
func HasPermission(user *User, requiredRole string) bool {
	if user == nil {
		return false
	}
	return roleHierarchy[user.Role] >= roleHierarchy[requiredRole]
}
