package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lottoloss/lottoloss-backend/api/routes"
	"github.com/lottoloss/lottoloss-backend/internal/config"
	"github.com/lottoloss/lottoloss-backend/internal/games"
	"github.com/lottoloss/lottoloss-backend/internal/handlers"
	"github.com/lottoloss/lottoloss-backend/internal/models"
	"github.com/lottoloss/lottoloss-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func mustDay(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

type memTicketRepo struct {
	store map[string][]models.Ticket
}

func (r *memTicketRepo) GetAll(ctx context.Context, visitorID, game string) ([]models.Ticket, error) {
	tickets := r.store[visitorID+"/"+game]
	if tickets == nil {
		return []models.Ticket{}, nil
	}
	return tickets, nil
}

func (r *memTicketRepo) SetAll(ctx context.Context, visitorID, game string, tickets []models.Ticket) error {
	r.store[visitorID+"/"+game] = tickets
	return nil
}

type memAdminRepo struct {
	users map[string]*models.AdminUser
}

func (r *memAdminRepo) Create(ctx context.Context, user *models.AdminUser) error {
	r.users[user.Email] = user
	return nil
}

func (r *memAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

type stubDrawSource struct {
	draws map[string][]models.Draw
}

func (s *stubDrawSource) Draws(ctx context.Context, g *games.Game) []models.Draw {
	return s.draws[g.Key]
}

func (s *stubDrawSource) Refresh(ctx context.Context, g *games.Game) int {
	return len(s.draws[g.Key])
}

func newTestRouter(t *testing.T, source services.DrawSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedHosts: []string{"http://localhost:3000"}},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
	ticketRepo := &memTicketRepo{store: make(map[string][]models.Ticket)}
	adminRepo := &memAdminRepo{users: make(map[string]*models.AdminUser)}
	if source == nil {
		source = &stubDrawSource{draws: map[string][]models.Draw{}}
	}

	deps := routes.HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(services.NewAuthService(adminRepo, cfg)),
		TicketHandler:  handlers.NewTicketHandler(services.NewTicketService(ticketRepo)),
		ResultsHandler: handlers.NewResultsHandler(services.NewResultsService(ticketRepo, source)),
		ArchiveHandler: handlers.NewArchiveHandler(services.NewArchiveService(source)),
	}
	return routes.SetupRouter(cfg, deps)
}

func doJSON(router *gin.Engine, method, path, visitor string, body interface{}) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if visitor != "" {
		req.Header.Set("X-Visitor-ID", visitor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthAndGames(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/games", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestTicketEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("missing visitor header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/tickets/eurojackpot", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/tickets/powerball", "v1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create list delete", func(t *testing.T) {
		body := map[string]interface{}{
			"primaryNumbers":   []int{1, 2, 3, 4, 5},
			"secondaryNumbers": []int{6, 7},
		}
		w := doJSON(router, http.MethodPost, "/api/v1/tickets/eurojackpot", "v1", body)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, http.MethodGet, "/api/v1/tickets/eurojackpot", "v1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var tickets []models.Ticket
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
		require.Len(t, tickets, 1)
		assert.Equal(t, 2.60, tickets[0].Stake)

		// Other visitors see nothing
		w = doJSON(router, http.MethodGet, "/api/v1/tickets/eurojackpot", "v2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
		assert.Empty(t, tickets)

		w = doJSON(router, http.MethodDelete, "/api/v1/tickets/eurojackpot/0", "v1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodDelete, "/api/v1/tickets/eurojackpot/0", "v1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid ticket", func(t *testing.T) {
		body := map[string]interface{}{"primaryNumbers": []int{1, 2}}
		w := doJSON(router, http.MethodPost, "/api/v1/tickets/eurojackpot", "v1", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bulk import", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/tickets/lotto6aus49/import", "v3",
			[]interface{}{[]int{1, 2, 3, 4, 5, 6, 9}, []int{1, 2}})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]int
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp["imported"])

		w = doJSON(router, http.MethodPost, "/api/v1/tickets/lotto6aus49/import", "v3",
			map[string]string{"not": "an array"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResultsEndpoints(t *testing.T) {
	source := &stubDrawSource{draws: map[string][]models.Draw{
		"eurojackpot": {
			{Date: mustDay("2023-01-06"), Primary: []int{1, 2, 3, 20, 30}, Secondary: []int{11, 12}},
		},
	}}
	router := newTestRouter(t, source)

	t.Run("check", func(t *testing.T) {
		body := map[string]interface{}{
			"primaryNumbers":   []int{1, 2, 3, 4, 5},
			"secondaryNumbers": []int{1, 2},
		}
		w := doJSON(router, http.MethodPost, "/api/v1/results/eurojackpot/check", "", body)
		require.Equal(t, http.StatusOK, w.Code)
		var summary models.EvaluationSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 1, summary.Checked)
		assert.Equal(t, 1, summary.Wins)
	})

	t.Run("check with bad date", func(t *testing.T) {
		body := map[string]interface{}{
			"primaryNumbers":   []int{1, 2, 3, 4, 5},
			"secondaryNumbers": []int{1, 2},
			"startDate":        "06.01.2023",
		}
		w := doJSON(router, http.MethodPost, "/api/v1/results/eurojackpot/check", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wasted money requires visitor", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/results/eurojackpot/wasted-money", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, http.MethodGet, "/api/v1/results/eurojackpot/wasted-money", "v1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var series models.WastedMoneySeries
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
		assert.Empty(t, series.Dates)
	})
}

func TestProtectedEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/archive/eurojackpot/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": "a@b.c", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArchiveStatsEndpoint(t *testing.T) {
	source := &stubDrawSource{draws: map[string][]models.Draw{
		"eurojackpot": {
			{Date: mustDay("2023-01-06"), Primary: []int{1, 2, 3, 4, 5}, Secondary: []int{1, 2}},
		},
	}}
	router := newTestRouter(t, source)

	w := doJSON(router, http.MethodGet, "/api/v1/archive/eurojackpot/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.ArchiveStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalDraws)
	assert.Equal(t, "2023-01-06", stats.FirstDrawDate)
}
