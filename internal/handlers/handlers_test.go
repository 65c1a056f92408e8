package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/auth"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

// setupRouter gives each test its own in-memory database behind the global
// handle and returns the full application router.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.Configure("test-secret", time.Hour)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))

	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	db.DB = gormDB

	require.NoError(t, db.MigrateDatabase())

	t.Cleanup(func() {
		sqlDB, err := gormDB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return router.NewRouter()
}

func performJSON(r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer

	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// seedPerson writes a person row plus its subtype row, the same shape the
// creation endpoints produce.
func seedPerson(t *testing.T, name, email, password string, role models.Role) models.Person {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	person := models.Person{Name: name, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, db.DB.Create(&person).Error)

	switch role {
	case models.RoleManager:
		require.NoError(t, db.DB.Create(&models.Manager{ID: person.ID}).Error)
	case models.RoleCoach:
		require.NoError(t, db.DB.Create(&models.Coach{ID: person.ID}).Error)
	case models.RolePlayer:
		require.NoError(t, db.DB.Create(&models.Player{ID: person.ID, Position: "center"}).Error)
	}

	return person
}

func seedTeam(t *testing.T, name string, managerID uint, coachID *uint) models.Team {
	t.Helper()

	team := models.Team{Name: name, ManagerID: managerID, CoachID: coachID}
	require.NoError(t, db.DB.Create(&team).Error)
	return team
}

func seedTeamPlayer(t *testing.T, email string, teamID uint) models.Person {
	t.Helper()

	person := seedPerson(t, "Player "+email, email, "password123", models.RolePlayer)
	require.NoError(t, db.DB.Model(&models.Player{}).Where("id = ?", person.ID).
		Update("team_id", teamID).Error)
	return person
}

func tokenFor(t *testing.T, person models.Person, teamID *uint) string {
	t.Helper()

	token, err := auth.IssueToken(person.ID, person.Role, teamID)
	require.NoError(t, err)
	return token
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.DB.Model(model).Count(&count).Error)
	return count
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

var jsonUnmarshal = json.Unmarshal
