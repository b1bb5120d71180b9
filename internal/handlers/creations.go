package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"quickai-backend/internal/middleware"
	"quickai-backend/internal/models"
)

// CreationStore is the persistence surface for creations.
type CreationStore interface {
	CreateCreation(userID, prompt, content, creationType string, publish bool) (*models.Creation, error)
	GetUserCreations(userID string) ([]models.Creation, error)
	GetPublishedCreations() ([]models.Creation, error)
	ToggleLike(creationID int64, userID string) (*models.Creation, bool, error)
}

type CreationsHandler struct {
	store CreationStore
}

func NewCreationsHandler(store CreationStore) *CreationsHandler {
	return &CreationsHandler{store: store}
}

// GetUserCreations godoc
// @Summary     List the caller's creations
// @Description Returns all creations belonging to the authenticated user, newest first.
// @Tags        user
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Router      /api/user/get-user-creations [get]
func (h *CreationsHandler) GetUserCreations(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("user not authenticated"))
		return
	}

	creations, err := h.store.GetUserCreations(userID)
	if err != nil {
		c.JSON(http.StatusOK, models.Fail("failed to load creations"))
		return
	}
	if creations == nil {
		creations = []models.Creation{}
	}

	c.JSON(http.StatusOK, models.OK(creations))
}

// GetPublishedCreations godoc
// @Summary     List the public gallery
// @Description Returns all published image creations, newest first.
// @Tags        user
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Envelope
// @Router      /api/user/get-published-creations [get]
func (h *CreationsHandler) GetPublishedCreations(c *gin.Context) {
	if _, _, ok := middleware.Identity(c); !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("user not authenticated"))
		return
	}

	creations, err := h.store.GetPublishedCreations()
	if err != nil {
		c.JSON(http.StatusOK, models.Fail("failed to load published creations"))
		return
	}
	if creations == nil {
		creations = []models.Creation{}
	}

	c.JSON(http.StatusOK, models.OK(creations))
}

// ToggleLike godoc
// @Summary     Toggle a like on a creation
// @Description Adds the caller to the creation's likes, or removes them if already present. Toggling twice restores the original state.
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ToggleLikeRequest true "Creation ID"
// @Success     200 {object} models.Envelope
// @Router      /api/user/toggle-like-creations [post]
func (h *CreationsHandler) ToggleLike(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("user not authenticated"))
		return
	}

	var req models.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.Fail("invalid request body"))
		return
	}
	if req.CreationID <= 0 {
		c.JSON(http.StatusOK, models.Fail("creationId is required"))
		return
	}

	creation, liked, err := h.store.ToggleLike(req.CreationID, userID)
	if err != nil {
		c.JSON(http.StatusOK, models.Fail("failed to toggle like"))
		return
	}

	message := "Like removed"
	if liked {
		message = "Creation liked"
	}

	c.JSON(http.StatusOK, models.OKMessage(models.LikeState{
		CreationID: creation.ID,
		Liked:      liked,
		Likes:      creation.Likes,
	}, message))
}
