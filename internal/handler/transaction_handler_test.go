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

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewTransactionHandler(sessions, &websocket.NoOpPublisher{})

	reqBody := `{"description": "Weekly shop", "amount": "150.00", "date": "2026-03-05", "type": "expense", "category": "Groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Description != "Weekly shop" {
		t.Errorf("Expected description 'Weekly shop', got %s", response.Description)
	}
	if response.Amount != "150" {
		t.Errorf("Expected amount '150', got %s", response.Amount)
	}
	if response.Date != "2026-03-05" {
		t.Errorf("Expected date '2026-03-05', got %s", response.Date)
	}
	if response.ID == 0 {
		t.Error("Expected a non-zero id")
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewTransactionHandler(sessions, &websocket.NoOpPublisher{})

	reqBody := `{"description": "x", "amount": "not-a-number", "type": "expense", "category": "Other"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_CategoryMustMatchType(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewTransactionHandler(sessions, &websocket.NoOpPublisher{})

	// Groceries is an expense category, not an income one
	reqBody := `{"description": "x", "amount": "10", "type": "income", "category": "Groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewTransactionHandler(sessions, &websocket.NoOpPublisher{})

	// Create first
	reqBody := `{"description": "to delete", "amount": "10", "type": "expense", "category": "Other"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|test", 1)
	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	var created TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/"+fmt.Sprint(created.ID), nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	e := echo.New()
	sessions := newSessionService()
	defer sessions.Close()
	handler := NewTransactionHandler(sessions, &websocket.NoOpPublisher{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/12345", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12345")
	setupAuthContext(c, "auth0|test", 1)

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
