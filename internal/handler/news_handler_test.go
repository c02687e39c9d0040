package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshua-high/school-site-api/internal/models"
	"github.com/yeshua-high/school-site-api/internal/service"
)

type newsRepoStub struct {
	items  map[int64]*models.NewsMessage
	nextID int64
}

func (m *newsRepoStub) List(ctx context.Context, filter models.ListFilter) ([]models.NewsMessage, error) {
	out := []models.NewsMessage{}
	for _, message := range m.items {
		if !filter.All && !message.IsActive {
			continue
		}
		out = append(out, *message)
	}
	return out, nil
}

func (m *newsRepoStub) FindByID(ctx context.Context, id int64) (*models.NewsMessage, error) {
	if message, ok := m.items[id]; ok {
		cp := *message
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *newsRepoStub) Create(ctx context.Context, message *models.NewsMessage) error {
	if m.items == nil {
		m.items = make(map[int64]*models.NewsMessage)
	}
	m.nextID++
	message.ID = m.nextID
	cp := *message
	m.items[message.ID] = &cp
	return nil
}

func (m *newsRepoStub) Update(ctx context.Context, message *models.NewsMessage) error {
	if _, ok := m.items[message.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *message
	m.items[message.ID] = &cp
	return nil
}

func (m *newsRepoStub) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newsTestHandler(repo *newsRepoStub) *NewsHandler {
	return NewNewsHandler(service.NewNewsService(repo, nil, nil, nil))
}

func TestNewsHandlerListHidesInactiveByDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &newsRepoStub{items: map[int64]*models.NewsMessage{
		1: {ID: 1, Message: "live", IsActive: true},
		2: {ID: 2, Message: "hidden", IsActive: false},
	}}
	handler := newsTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/news", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.NewsMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "live", envelope.Data[0].Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/news?all=true", nil)
	handler.List(c)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestNewsHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newsTestHandler(&newsRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]interface{}{"message": "PTA meeting on Friday"})
	c.Request = httptest.NewRequest(http.MethodPost, "/api/news", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope struct {
		Data models.NewsMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "PTA meeting on Friday", envelope.Data.Message)
	assert.True(t, envelope.Data.IsActive)
}

func TestNewsHandlerUpdateNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newsTestHandler(&newsRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]interface{}{"id": 999, "message": "edited"})
	c.Request = httptest.NewRequest(http.MethodPut, "/api/news", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewsHandlerDeleteRequiresID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newsTestHandler(&newsRepoStub{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/news", nil)
	handler.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/news?id=abc", nil)
	handler.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewsHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &newsRepoStub{items: map[int64]*models.NewsMessage{
		4: {ID: 4, Message: "old", IsActive: true},
	}}
	handler := newsTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/news?id=4", nil)
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.items)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/news?id=4", nil)
	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
