package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/middleware"
)

// Follow subscribes the requester to an author and returns to the author's profile.
func (h *Handler) Follow(c *gin.Context) {
	author, err := h.follows.Follow(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(author.Username))
}

// Unfollow removes the subscription. A missing subscription is a 404.
func (h *Handler) Unfollow(c *gin.Context) {
	author, err := h.follows.Unfollow(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(author.Username))
}
