package handlers_test

import (
	"net/http"
	"testing"

	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/auth"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Ann",
		"email":    "ann@x.com",
		"password": "password123",
		"role":     "manager",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ann@x.com", user["email"])
	assert.Equal(t, "manager", user["role"])

	w = performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ann@x.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	claims, err := auth.VerifyToken(body["token"].(string))
	require.NoError(t, err)

	assert.Equal(t, uint(user["id"].(float64)), claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Nil(t, claims.TeamID)
}

func TestRegisterCreatesSubtypeRow(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Cody",
		"email":    "cody@x.com",
		"password": "password123",
		"role":     "coach",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, int64(1), countRows(t, &models.Coach{}))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Eve",
		"email":    "eve@x.com",
		"password": "password123",
		"role":     "admin",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.Person{}))
}

func TestRegisterMissingTeamRollsBack(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Pat",
		"email":    "pat@x.com",
		"password": "password123",
		"role":     "player",
		"position": "wing",
		"team_id":  999,
	}, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.Person{}))
	assert.Equal(t, int64(0), countRows(t, &models.Player{}))
}

func TestRegisterPlacesPlayerOnExistingTeam(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	team := seedTeam(t, "Falcons", manager.ID, nil)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Pat",
		"email":    "pat@x.com",
		"password": "password123",
		"role":     "player",
		"position": "wing",
		"team_id":  team.ID,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	user := decodeBody(t, w)["user"].(map[string]interface{})

	var player models.Player
	require.NoError(t, db.DB.First(&player, uint(user["id"].(float64))).Error)
	require.NotNil(t, player.TeamID)
	assert.Equal(t, team.ID, *player.TeamID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)

	w := performJSON(r, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Other Ann",
		"email":    "ann@x.com",
		"password": "password123",
		"role":     "player",
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(1), countRows(t, &models.Person{}))
	assert.Equal(t, int64(0), countRows(t, &models.Player{}))
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	r := setupRouter(t)
	seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)

	missing := performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@x.com",
		"password": "password123",
	}, "")
	wrong := performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ann@x.com",
		"password": "not-the-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	// Identical bodies so the response does not reveal whether the email exists.
	assert.Equal(t, missing.Body.String(), wrong.Body.String())
}

func TestLoginResolvesManagerTeamClaim(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	team := seedTeam(t, "Falcons", manager.ID, nil)

	w := performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ann@x.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.NotNil(t, body["team_id"])
	assert.Equal(t, float64(team.ID), body["team_id"])

	claims, err := auth.VerifyToken(body["token"].(string))
	require.NoError(t, err)
	require.NotNil(t, claims.TeamID)
	assert.Equal(t, team.ID, *claims.TeamID)
}

func TestLoginPlayerWithoutTeamDegradesToNullClaim(t *testing.T) {
	r := setupRouter(t)
	seedPerson(t, "Pat", "pat@x.com", "password123", models.RolePlayer)

	w := performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "pat@x.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Nil(t, body["team_id"])
	assert.Equal(t, "player", body["role"])
}
