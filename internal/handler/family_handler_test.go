package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
)

func postMember(t *testing.T, e *echo.Echo, handler *FamilyMemberHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/family-members", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)
	if err := handler.CreateFamilyMember(c); err != nil {
		t.Fatalf("CreateFamilyMember failed: %v", err)
	}
	return rec
}

func TestCreateFamilyMember_Success(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewFamilyMemberHandler(sessions, &websocket.NoOpPublisher{})

	rec := postMember(t, e, handler, `{"name": "Asha", "gender": "female"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response FamilyMemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Asha" || response.Gender != "female" {
		t.Errorf("Unexpected member: %+v", response)
	}
}

func TestCreateFamilyMember_DuplicateConflicts(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewFamilyMemberHandler(sessions, &websocket.NoOpPublisher{})

	postMember(t, e, handler, `{"name": "Asha", "gender": "female"}`)
	rec := postMember(t, e, handler, `{"name": "ASHA", "gender": "female"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for case-insensitive duplicate, got %d", rec.Code)
	}
}

func TestCreateFamilyMember_ReservedName(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewFamilyMemberHandler(sessions, &websocket.NoOpPublisher{})

	rec := postMember(t, e, handler, `{"name": "Me", "gender": "other"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for reserved name, got %d", rec.Code)
	}
}

func TestDeleteFamilyMember_NotFound(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewFamilyMemberHandler(sessions, &websocket.NoOpPublisher{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/family-members/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.DeleteFamilyMember(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
