package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/middleware"
	"github.com/Nisarga403/Family-FinanceFlow/internal/service"
	"github.com/Nisarga403/Family-FinanceFlow/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// FamilyMemberHandler handles family member endpoints
type FamilyMemberHandler struct {
	sessionService *service.SessionService
	publisher      websocket.EventPublisher
}

// NewFamilyMemberHandler creates a new FamilyMemberHandler
func NewFamilyMemberHandler(sessionService *service.SessionService, publisher websocket.EventPublisher) *FamilyMemberHandler {
	return &FamilyMemberHandler{
		sessionService: sessionService,
		publisher:      publisher,
	}
}

// CreateFamilyMemberRequest represents the request to add a family member
type CreateFamilyMemberRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// CreateFamilyMember adds a new family member
// POST /family-members
func (h *FamilyMemberHandler) CreateFamilyMember(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateFamilyMemberRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	member, err := st.AddFamilyMember(req.Name, domain.Gender(req.Gender))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Name is required", []ValidationError{
				{Field: "name", Message: "Cannot be empty"},
			})
		case errors.Is(err, domain.ErrMemberReserved):
			return NewValidationError(c, "Name is reserved", []ValidationError{
				{Field: "name", Message: "This name is reserved"},
			})
		case errors.Is(err, domain.ErrInvalidGender):
			return NewValidationError(c, "Invalid gender", []ValidationError{
				{Field: "gender", Message: "Must be male, female or other"},
			})
		case errors.Is(err, domain.ErrMemberExists):
			return NewConflictError(c, "A family member with this name already exists")
		default:
			log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create family member")
			return NewInternalError(c, "Failed to create family member")
		}
	}

	resp := toFamilyMemberResponse(member)
	h.publisher.Publish(userID, websocket.MemberCreated(resp))

	log.Info().Int32("user_id", userID).Int64("member_id", member.ID).Msg("Family member created")

	return c.JSON(http.StatusCreated, resp)
}

// DeleteFamilyMember removes a family member. Transactions attributed to the
// removed member are reassigned to "Me" in the same operation.
// DELETE /family-members/:id
func (h *FamilyMemberHandler) DeleteFamilyMember(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid family member ID", nil)
	}

	st, err := h.sessionService.Get(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to load session")
		return NewInternalError(c, "Failed to load data")
	}

	if err := st.DeleteFamilyMember(id); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return NewNotFoundError(c, "Family member not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int64("member_id", id).Msg("Failed to delete family member")
		return NewInternalError(c, "Failed to delete family member")
	}

	h.publisher.Publish(userID, websocket.MemberDeleted(map[string]int64{"id": id}))

	log.Info().Int32("user_id", userID).Int64("member_id", id).Msg("Family member deleted")

	return c.NoContent(http.StatusNoContent)
}
