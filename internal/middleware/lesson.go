package middleware

import "github.com/gin-gonic/gin"

// OpenLessons tracks the lesson a client instance is editing.
type OpenLessons interface {
	OpenLessonID(clientID string) (string, bool)
	Discard(clientID string)
}

// LeaveLesson discards the open lesson when a teacher request targets anything other
// than that lesson. Routes carry the lesson as the :lessonId parameter.
func LeaveLesson(lessons OpenLessons) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := StoreFrom(c)
		if lessons == nil || store == nil {
			c.Next()
			return
		}
		clientID := store.ClientID()
		if open, ok := lessons.OpenLessonID(clientID); ok && c.Param("lessonId") != open {
			lessons.Discard(clientID)
		}
		c.Next()
	}
}
