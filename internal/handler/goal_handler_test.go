package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
)

func createGoal(t *testing.T, e *echo.Echo, handler *GoalHandler, body string) GoalResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.CreateGoal(c); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return response
}

func TestCreateGoal_ProgressStartsAtZero(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewGoalHandler(sessions, &websocket.NoOpPublisher{})

	goal := createGoal(t, e, handler, `{"name": "New car", "targetAmount": "800000"}`)
	if goal.CurrentAmount != "0" {
		t.Errorf("Expected current amount '0', got %s", goal.CurrentAmount)
	}
	if goal.TargetAmount != "800000" {
		t.Errorf("Expected target '800000', got %s", goal.TargetAmount)
	}
}

func TestUpdateGoal_PartialPatch(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewGoalHandler(sessions, &websocket.NoOpPublisher{})

	goal := createGoal(t, e, handler, `{"name": "Vacation", "targetAmount": "100000"}`)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/goals/"+fmt.Sprint(goal.ID), strings.NewReader(`{"currentAmount": "25000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(goal.ID))
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.UpdateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var updated GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.CurrentAmount != "25000" {
		t.Errorf("Expected current amount '25000', got %s", updated.CurrentAmount)
	}
	if updated.Name != "Vacation" {
		t.Errorf("Expected name unchanged, got %s", updated.Name)
	}
}

func TestUpdateGoal_NotFound(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewGoalHandler(sessions, &websocket.NoOpPublisher{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/goals/999", strings.NewReader(`{"name": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.UpdateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteGoal_Success(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewGoalHandler(sessions, &websocket.NoOpPublisher{})

	goal := createGoal(t, e, handler, `{"name": "Short lived", "targetAmount": "1"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/goals/"+fmt.Sprint(goal.ID), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(goal.ID))
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.DeleteGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
