package services

import (
	"go-echo-starwars/internal/models"
	"go-echo-starwars/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive *bool  `json:"is_active"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type UserService = CRUDService[models.User, CreateUserInput, UpdateUserInput]

// NewUserService stores passwords as bcrypt hashes of the given cost.
func NewUserService(db *gorm.DB, hashCost int) *UserService {
	repo := repository.New[models.User](db,
		repository.WithCascade[models.User](favoritesOf("user_id")),
	)
	h := passwordHasher{cost: hashCost}
	return newCRUDService("user", "User", repo, h.buildUser, h.userChanges)
}

type passwordHasher struct {
	cost int
}

func (h passwordHasher) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h passwordHasher) buildUser(in CreateUserInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, missingFields()
	}

	hashed, err := h.hash(in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		IsActive: active,
	}, nil
}

func (h passwordHasher) userChanges(in UpdateUserInput) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	if err := setString(changes, "username", in.Username, true); err != nil {
		return nil, err
	}
	if err := setString(changes, "email", in.Email, true); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, emptyField("password")
		}
		hashed, err := h.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		changes["password"] = hashed
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}
	return changes, nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
