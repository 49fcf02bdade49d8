package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/middleware"
	"github.com/mmynk/yatube/internal/models"
	"github.com/mmynk/yatube/internal/service"
)

// Index shows every post.
func (h *Handler) Index(c *gin.Context) {
	page, err := h.feed.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplIndex, gin.H{"Page": page})
}

// GroupPosts shows the posts of one group.
func (h *Handler) GroupPosts(c *gin.Context) {
	group, err := h.feed.Group(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplGroup, gin.H{"Group": group.Group, "Page": group.Page})
}

// Profile shows the posts of one author and whether the requester follows them.
func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.feed.Profile(c.Request.Context(), c.Param("username"), middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplProfile, gin.H{
		"Author":    profile.Author,
		"Page":      profile.Page,
		"Following": profile.Following,
	})
}

// PostDetail shows a post with its comments and the comment form.
func (h *Handler) PostDetail(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderDetail(c, id, newForm(nil))
}

func (h *Handler) renderDetail(c *gin.Context, id int64, form formView) {
	detail, err := h.feed.PostDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplPostDetail, gin.H{
		"Post":      detail.Post,
		"PostCount": detail.PostCount,
		"Comments":  detail.Comments,
		"Form":      form,
	})
}

// FollowIndex shows posts of the authors the requester follows.
func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.feed.Follow(c.Request.Context(), middleware.CurrentUser(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, tmplFollow, gin.H{"Page": page})
}

// CreateForm shows an empty post form.
func (h *Handler) CreateForm(c *gin.Context) {
	h.renderPostForm(c, nil, newForm(nil))
}

// Create stores a new post by the requester and redirects to their profile.
func (h *Handler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form service.PostForm
	if verr := bindForm(c, &form); verr != nil {
		h.renderPostForm(c, nil, newForm(nil).withErrors(verr))
		return
	}
	form.Image = uploadedFile(c, "image")

	_, err := h.posts.Create(c.Request.Context(), user, form)
	if verr, ok := apperrors.AsValidation(err); ok {
		h.renderPostForm(c, nil, postFormView(form).withErrors(verr))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.redirect(c, profileURL(user.Username))
}

// EditForm shows the post form filled with the post. Only the author may see it.
func (h *Handler) EditForm(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.posts.GetForEdit(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	values := map[string]string{"text": post.Text}
	if post.GroupID != nil {
		values["group"] = strconv.FormatInt(*post.GroupID, 10)
	}
	h.renderPostForm(c, post, newForm(values))
}

// Edit updates a post and redirects to it. Only the author may edit.
func (h *Handler) Edit(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	editor := middleware.CurrentUser(c)
	post, err := h.posts.GetForEdit(c.Request.Context(), editor, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form service.PostForm
	if verr := bindForm(c, &form); verr != nil {
		h.renderPostForm(c, post, newForm(nil).withErrors(verr))
		return
	}
	form.Image = uploadedFile(c, "image")

	_, err = h.posts.Edit(c.Request.Context(), editor, id, form)
	if verr, ok := apperrors.AsValidation(err); ok {
		h.renderPostForm(c, post, postFormView(form).withErrors(verr))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.redirect(c, postURL(id))
}

// renderPostForm renders the create form, or the edit form when post is set.
func (h *Handler) renderPostForm(c *gin.Context, post *models.Post, form formView) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, tmplPostCreate, gin.H{
		"Form":   form,
		"Groups": groups,
		"IsEdit": post != nil,
		"Post":   post,
	})
}

func postFormView(form service.PostForm) formView {
	return newForm(map[string]string{"text": form.Text, "group": form.Group})
}

// AddComment attaches a comment by the requester and redirects to the post.
func (h *Handler) AddComment(c *gin.Context) {
	id, err := postID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var form service.CommentForm
	if verr := bindForm(c, &form); verr != nil {
		h.renderDetail(c, id, newForm(nil).withErrors(verr))
		return
	}

	_, err = h.posts.AddComment(c.Request.Context(), middleware.CurrentUser(c), id, form)
	if verr, ok := apperrors.AsValidation(err); ok {
		h.renderDetail(c, id, newForm(map[string]string{"text": form.Text}).withErrors(verr))
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.redirect(c, postURL(id))
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}
