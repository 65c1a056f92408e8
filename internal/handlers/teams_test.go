package handlers_test

import (
	"net/http"
	"testing"

	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full manager onboarding: public manager creation, login with the one-time
// password, team creation under the manager's identity, team detail fetch.
func TestManagerTeamScenario(t *testing.T) {
	r := setupRouter(t)

	coach := seedPerson(t, "Cody", "cody@x.com", "password123", models.RoleCoach)

	w := performJSON(r, http.MethodPost, "/api/managers", map[string]interface{}{
		"name":  "Ann",
		"email": "ann@x.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	tempPassword := body["temporaryPassword"].(string)
	manager := body["manager"].(map[string]interface{})
	managerID := uint(manager["id"].(float64))

	login := performJSON(r, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "ann@x.com",
		"password": tempPassword,
	}, "")
	require.Equal(t, http.StatusOK, login.Code)
	token := decodeBody(t, login)["token"].(string)

	created := performJSON(r, http.MethodPost, "/api/teams", map[string]interface{}{
		"name":     "Falcons",
		"coach_id": coach.ID,
	}, token)
	require.Equal(t, http.StatusCreated, created.Code)

	team := decodeBody(t, created)["team"].(map[string]interface{})
	assert.Equal(t, float64(managerID), team["manager_id"])

	teamID := uint(team["id"].(float64))

	details := performJSON(r, http.MethodGet, "/api/teams/"+itoa(teamID), nil, token)
	require.Equal(t, http.StatusOK, details.Code)

	detailsBody := decodeBody(t, details)
	assert.Equal(t, "Falcons", detailsBody["team"].(map[string]interface{})["name"])
	assert.Empty(t, detailsBody["players"])
}

func TestGetMissingTeam(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	token := tokenFor(t, manager, nil)

	w := performJSON(r, http.MethodGet, "/api/teams/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTeamForbiddenForPlayerRole(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	team := seedTeam(t, "Falcons", manager.ID, nil)
	player := seedTeamPlayer(t, "pat@x.com", team.ID)

	// Ownership is irrelevant: the role gate rejects players outright.
	token := tokenFor(t, player, &team.ID)

	w := performJSON(r, http.MethodDelete, "/api/teams/"+itoa(team.ID), nil, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, int64(1), countRows(t, &models.Team{}))
}

func TestDeleteTeamRemovesDependentsInOneTransaction(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	team := seedTeam(t, "Falcons", manager.ID, nil)
	seedTeamPlayer(t, "pat@x.com", team.ID)
	seedTeamPlayer(t, "sam@x.com", team.ID)
	require.NoError(t, db.DB.Create(&models.Schedule{
		EventType: "Game", Location: "Pool A", TeamID: team.ID,
	}).Error)

	token := tokenFor(t, manager, &team.ID)

	w := performJSON(r, http.MethodDelete, "/api/teams/"+itoa(team.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(team.ID), body["id"])

	assert.Equal(t, int64(0), countRows(t, &models.Team{}))
	assert.Equal(t, int64(0), countRows(t, &models.Schedule{}))
	assert.Equal(t, int64(0), countRows(t, &models.Player{}))
	// Only the manager's person row survives: roster accounts die with
	// the team.
	assert.Equal(t, int64(1), countRows(t, &models.Person{}))
}

func TestDeleteMissingTeam(t *testing.T) {
	r := setupRouter(t)

	manager := seedPerson(t, "Ann", "ann@x.com", "password123", models.RoleManager)
	token := tokenFor(t, manager, nil)

	w := performJSON(r, http.MethodDelete, "/api/teams/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTeamsRequiresAuth(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodGet, "/api/teams", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
