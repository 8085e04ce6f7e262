package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
)

// bindJSON decodes the body into dst. An empty body leaves dst zero-valued
// so the validators report the missing fields. It writes a 400 and returns
// false on malformed JSON.
func bindJSON(c *gin.Context, catalog *messages.Catalog, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": catalog.InvalidPayload})
	return false
}

// render writes resp as {"error": message} on failure, an empty body for
// 201 without data, and the data as JSON otherwise.
func render(c *gin.Context, catalog *messages.Catalog, resp controller.Response) {
	switch {
	case resp.Failed():
		c.JSON(resp.StatusCode, gin.H{"error": catalog.Message(resp.Err)})
	case resp.Data == nil:
		c.Status(resp.StatusCode)
	default:
		c.JSON(resp.StatusCode, resp.Data)
	}
}
