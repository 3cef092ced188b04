package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodgram-backend/internal/domains/tag"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context) ([]tag.Tag, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]tag.Tag)
	return out, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id int64) (*tag.Tag, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*tag.Tag)
	return out, args.Error(1)
}

func (m *mockService) Import(ctx context.Context, tags []tag.Tag) (int, error) {
	args := m.Called(ctx, tags)
	return args.Int(0), args.Error(1)
}

func router(svc tag.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTagHandler(svc)
	r := gin.New()
	r.GET("/tags", h.List)
	r.GET("/tags/:id", h.Get)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestList(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return([]tag.Tag{{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}}, nil)

	w := get(router(svc), "/tags")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"breakfast"`)
}

func TestGet(t *testing.T) {
	svc := new(mockService)
	svc.On("Get", mock.Anything, int64(3)).Return(nil, tag.ErrTagNotFound)
	svc.On("Get", mock.Anything, int64(4)).Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusNotFound, get(router(svc), "/tags/3").Code)
	assert.Equal(t, http.StatusNotFound, get(router(svc), "/tags/x").Code)
	assert.Equal(t, http.StatusInternalServerError, get(router(svc), "/tags/4").Code)
}
