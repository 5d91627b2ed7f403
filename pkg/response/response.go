package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// LoginPath is where forced logouts and unauthenticated navigations land.
const LoginPath = "/login"

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Redirect answers a navigation with 303 See Other, echoing the target in meta.
func Redirect(c *gin.Context, location string) {
	c.Header("Cache-Control", "no-store")
	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, Envelope{Meta: map[string]interface{}{"redirect": location}})
}

// Error sends an error response converting the error to the common structure.
// An expired session is never rendered in place: the caller is sent back to the login page.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	if appErr.Code == appErrors.ErrSessionExpired.Code {
		c.Header("Location", LoginPath)
		c.JSON(http.StatusSeeOther, Envelope{Error: appErr, Meta: map[string]interface{}{"redirect": LoginPath}})
		return
	}
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// Blob streams a binary payload as an attachment.
func Blob(c *gin.Context, contentType, filename string, data []byte) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if filename != "" {
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}

// NoContent sends a 204 response and flushes the header.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}
