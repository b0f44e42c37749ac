package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPrefs(c *gin.Context) {
	doc, err := s.prefsStore.Load()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", doc)
}

func (s *Server) PutPrefs(c *gin.Context) {
	doc, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.prefsStore.Save(json.RawMessage(doc)); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	c.Data(http.StatusOK, "application/json", doc)
}
