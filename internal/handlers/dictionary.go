package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qalamlabs/qalam-backend/internal/services"
)

type DictionaryHandler struct {
	dictionaryService services.DictionaryService
}

func NewDictionaryHandler(dictionaryService services.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{dictionaryService: dictionaryService}
}

func (dh *DictionaryHandler) SearchRoots(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	roots, total, err := dh.dictionaryService.SearchRoots(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"roots": roots, "total": total})
}

func (dh *DictionaryHandler) ListGrammarConcepts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	concepts, total, err := dh.dictionaryService.ListGrammarConcepts(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"concepts": concepts, "total": total})
}
