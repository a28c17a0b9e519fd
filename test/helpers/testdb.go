package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coachdeck_backend/internal/models"
)

// DBHandle оборачивает соединение с тестовой базой
type DBHandle struct {
	DB *gorm.DB
}

// UniqueEmail генерирует уникальный email, чтобы параллельные тесты
// не мешали друг другу на общей базе
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.local", prefix, time.Now().UnixNano())
}

// CreateUser создает пользователя напрямую в базе, хешируя пароль
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role models.UserRole, status models.UserStatus) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err, "password hashing must not fail")

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		AccessLevel:  models.AccessLevelUser,
		Status:       status,
	}
	if role == models.UserRoleSuperAdmin {
		user.AccessLevel = models.AccessLevelAdmin
	}

	require.NoError(t, db.Create(user).Error, "test user creation must not fail")
	return user
}

// Login логинит пользователя через API и возвращает токен
func Login(t *testing.T, ts *TestServer, email, password string) string {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+body)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Token)
	return parsed.Token
}

// CreateAndLoginCoach создает активного коуча и возвращает токен
func CreateAndLoginCoach(t *testing.T, ts *TestServer) (string, *models.User) {
	email := UniqueEmail("coach")
	user := CreateUser(t, ts.DB.DB, "Test Coach", email, "password123", models.UserRoleCoach, models.UserStatusActive)
	return Login(t, ts, email, "password123"), user
}

// CreateAndLoginStudent создает активного студента и возвращает токен
func CreateAndLoginStudent(t *testing.T, ts *TestServer) (string, *models.User) {
	email := UniqueEmail("student")
	user := CreateUser(t, ts.DB.DB, "Test Student", email, "password123", models.UserRoleStudent, models.UserStatusActive)
	return Login(t, ts, email, "password123"), user
}

// CreateAndLoginAdmin создает супер-админа и возвращает токен
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := UniqueEmail("admin")
	user := CreateUser(t, ts.DB.DB, "Test Admin", email, "password123", models.UserRoleSuperAdmin, models.UserStatusActive)
	return Login(t, ts, email, "password123"), user
}

// CreateTestDeck создает деку с членством напрямую в базе
func CreateTestDeck(t *testing.T, db *gorm.DB, coachID, studentID, name string) *models.Deck {
	deck := &models.Deck{
		Name:    name,
		CoachID: coachID,
	}
	require.NoError(t, db.Create(deck).Error)

	membership := &models.Membership{
		DeckID:    deck.ID,
		StudentID: studentID,
	}
	require.NoError(t, db.Create(membership).Error)
	deck.Membership = membership
	return deck
}

// CreateTestPlan создает активный тариф коуча
func CreateTestPlan(t *testing.T, db *gorm.DB, coachID string, amount int64) *models.PaymentPlan {
	plan := &models.PaymentPlan{
		CoachID:  coachID,
		Name:     "Monthly coaching",
		Type:     models.PlanTypeOneTime,
		Amount:   amount,
		Currency: "PHP",
		Active:   true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

// EnableBankChannel включает банковский канал у коуча
func EnableBankChannel(t *testing.T, db *gorm.DB, coachID string) {
	cfg := &models.CoachPaymentsConfig{}
	require.NoError(t, db.Where(models.CoachPaymentsConfig{CoachID: coachID}).FirstOrCreate(cfg).Error)
	cfg.EnableBank = true
	require.NoError(t, db.Save(cfg).Error)
}
