package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/service"
)

// LoginForm shows the login page. The next parameter is carried through the form.
func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, tmplLogin, gin.H{
		"Form": newForm(nil),
		"Next": safeNext(c.Query("next")),
	})
}

// Login checks credentials, sets the session cookie and follows next.
func (h *Handler) Login(c *gin.Context) {
	next := safeNext(c.PostForm("next"))

	var form service.LoginForm
	if verr := bindForm(c, &form); verr != nil {
		h.render(c, http.StatusOK, tmplLogin, gin.H{"Form": newForm(nil).withErrors(verr), "Next": next})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), form)
	if verr, ok := apperrors.AsValidation(err); ok {
		view := newForm(map[string]string{"username": form.Username}).withErrors(verr)
		h.render(c, http.StatusOK, tmplLogin, gin.H{"Form": view, "Next": next})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setSession(c, session.Token)
	h.redirect(c, next)
}

// SignupForm shows the registration page.
func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, tmplSignup, gin.H{"Form": newForm(nil)})
}

// Signup creates an account, logs it in and goes to the index.
func (h *Handler) Signup(c *gin.Context) {
	var form service.SignupForm
	if verr := bindForm(c, &form); verr != nil {
		h.render(c, http.StatusOK, tmplSignup, gin.H{"Form": newForm(nil).withErrors(verr)})
		return
	}

	session, err := h.auth.Signup(c.Request.Context(), form)
	if verr, ok := apperrors.AsValidation(err); ok {
		view := newForm(map[string]string{"username": form.Username}).withErrors(verr)
		h.render(c, http.StatusOK, tmplSignup, gin.H{"Form": view})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setSession(c, session.Token)
	h.redirect(c, "/")
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	h.redirect(c, "/")
}

func (h *Handler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// safeNext only allows local absolute paths, so login cannot redirect off-site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
