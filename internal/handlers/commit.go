package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qalamlabs/qalam-backend/internal/services"
)

type CommitHandler struct {
	commitService services.CommitService
}

func NewCommitHandler(commitService services.CommitService) *CommitHandler {
	return &CommitHandler{commitService: commitService}
}

// Commit applies one annotation step to a lesson. Body:
// {step, container_id?, unit_id?, payload}.
func (ch *CommitHandler) Commit(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	lessonID, err := lessonParam(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req services.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	result, err := ch.commitService.CommitStep(c.Request.Context(), userID, lessonID, &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, result)
}
