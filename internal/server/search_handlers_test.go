package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	newApp := func(userRepo *MockUserRepository) *fiber.App {
		app := fiber.New()
		s := &Server{config: testConfig(), userRepo: userRepo}
		s.userService = service.NewUserService(userRepo)
		app.Get("/api/search/users", s.SearchUsers)
		return app
	}

	t.Run("empty query returns empty list without searching", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		app := newApp(userRepo)

		for _, target := range []string{"/api/search/users", "/api/search/users?query="} {
			req := httptest.NewRequest(http.MethodGet, target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var users []models.User
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
			_ = resp.Body.Close()
			assert.Empty(t, users)
		}
		userRepo.AssertNotCalled(t, "Search")
	})

	t.Run("query delegates to repository", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		app := newApp(userRepo)

		userRepo.On("Search", mock.Anything, "ali", 20, 0).
			Return([]models.User{{ID: 1, Username: "alice"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/search/users?query=ali", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var users []models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)
		userRepo.AssertExpectations(t)
	})
}
