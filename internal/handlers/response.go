package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/qalamlabs/qalam-backend/internal/platform/apierr"
)

// Every endpoint answers with the same envelope: {ok:true, result} on
// success, {ok:false, error} on failure. Editors surface the error string
// verbatim and re-offer the same step for retry.

func respondOK(c *gin.Context, result interface{}) {
	c.JSON(200, gin.H{"ok": true, "result": result})
}

func respondErr(c *gin.Context, err error) {
	c.JSON(apierr.StatusOf(err), gin.H{"ok": false, "error": err.Error()})
}
