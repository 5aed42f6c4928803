package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qalamlabs/qalam-backend/internal/platform/apierr"
	"github.com/qalamlabs/qalam-backend/internal/repos"
	"github.com/qalamlabs/qalam-backend/internal/requestdata"
	"github.com/qalamlabs/qalam-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

func callerID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized("not authenticated")
	}
	return rd.UserID, nil
}

func lessonParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apierr.BadRequest("invalid lesson id %q", c.Param("id"))
	}
	return id, nil
}

func (lh *LessonHandler) Create(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	var in services.CreateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	lesson, err := lh.lessonService.Create(c.Request.Context(), userID, &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, lesson)
}

func (lh *LessonHandler) List(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter := repos.LessonListFilter{
		Query:      c.Query("q"),
		LessonType: c.Query("lesson_type"),
		Limit:      limit,
		Offset:     offset,
	}
	lessons, total, err := lh.lessonService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"lessons": lessons, "total": total})
}

func (lh *LessonHandler) Get(c *gin.Context) {
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
	lesson, err := lh.lessonService.Get(c.Request.Context(), userID, lessonID)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, lesson)
}

func (lh *LessonHandler) Update(c *gin.Context) {
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
	var in services.UpdateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	lesson, err := lh.lessonService.Update(c.Request.Context(), userID, lessonID, &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, lesson)
}

func (lh *LessonHandler) Delete(c *gin.Context) {
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
	if err := lh.lessonService.Delete(c.Request.Context(), userID, lessonID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": lessonID})
}
