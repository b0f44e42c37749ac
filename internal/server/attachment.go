package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListAttachments(c *gin.Context) {
	resp, err := s.attachmentSvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	src, err := file.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer src.Close()

	resp, err := s.attachmentSvc.Attach(
		c.Request.Context(),
		c.Param("id"),
		file.Filename,
		file.Header.Get("Content-Type"),
		c.PostForm("note"),
		src,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadAttachment(c *gin.Context) {
	att, rc, err := s.attachmentSvc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, att.SizeBytes, att.ContentType, rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + att.FileName + `"`,
	})
}

func (s *Server) DeleteAttachment(c *gin.Context) {
	if err := s.attachmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
