package web

import (
	"html/template"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yatube/internal/models"
)

type form struct {
	Values map[string]string
	Errors map[string]string
}

func TestRendererPages(t *testing.T) {
	r, err := NewRenderer(template.FuncMap{
		"mediaURL": func(ref string) string { return "/media/" + ref },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"core/403.html",
		"core/404.html",
		"core/500.html",
		"posts/follow.html",
		"posts/group_list.html",
		"posts/index.html",
		"posts/post_create.html",
		"posts/post_detail.html",
		"posts/profile.html",
		"users/login.html",
		"users/signup.html",
	}, r.Pages())

	user := &models.User{ID: "u1", Username: "leo"}
	author := &models.User{ID: "u2", Username: "fyodor"}
	group := &models.Group{ID: 3, Title: "Novels", Slug: "novels", Description: "Long books"}
	post := &models.Post{
		ID: 7, Text: "Happy families are all alike", CreatedAt: time.Now(),
		AuthorID: author.ID, Author: author, GroupID: &group.ID, Group: group, Image: "posts/a.png",
	}
	page := &models.Page{Posts: []*models.Post{post}, Number: 1, NumPages: 2, Count: 11, PageSize: 10}
	emptyForm := form{Values: map[string]string{}, Errors: map[string]string{}}

	tests := []struct {
		name string
		data map[string]any
		want []string
	}{
		{"posts/index.html", map[string]any{"User": user, "Page": page}, []string{"Happy families", "/media/posts/a.png", "?page=2"}},
		{"posts/group_list.html", map[string]any{"User": nil, "Group": group, "Page": page}, []string{"Long books", "Log in"}},
		{"posts/profile.html", map[string]any{"User": user, "Author": author, "Page": page, "Following": true}, []string{"/profile/fyodor/unfollow/", "Total posts: 11"}},
		{"posts/follow.html", map[string]any{"User": user, "Page": &models.Page{Number: 1, NumPages: 1}}, []string{"not following anyone"}},
		{"posts/post_detail.html", map[string]any{
			"User": user, "Post": post, "PostCount": 4,
			"Comments": []*models.Comment{{Text: "nice", Author: user, CreatedAt: time.Now()}},
			"Form":     form{Values: map[string]string{}, Errors: map[string]string{"text": "This field is required."}},
		}, []string{"Posts by this author: 4", "nice", "This field is required.", "/posts/7/comment/"}},
		{"posts/post_create.html", map[string]any{
			"User": user, "IsEdit": true, "Post": post, "Groups": []*models.Group{group},
			"Form": form{Values: map[string]string{"text": "draft", "group": "3"}, Errors: map[string]string{}},
		}, []string{"Edit post", "/posts/7/edit/", "selected", "draft"}},
		{"posts/post_create.html", map[string]any{
			"User": user, "IsEdit": false, "Groups": []*models.Group{group}, "Form": emptyForm,
		}, []string{"New post", "action=\"/create/\""}},
		{"users/login.html", map[string]any{"User": nil, "Form": emptyForm, "Next": "/follow/"}, []string{"value=\"/follow/\""}},
		{"users/signup.html", map[string]any{"User": nil, "Form": emptyForm}, []string{"password2"}},
		{"core/404.html", map[string]any{"User": nil, "Path": "/missing/"}, []string{"/missing/"}},
		{"core/403.html", map[string]any{"User": user}, []string{"Access denied"}},
		{"core/500.html", map[string]any{"User": nil}, []string{"Server error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Instance(tt.name, tt.data).Render(rec))

			body := rec.Body.String()
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestRendererMissingPage(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	err = r.Instance("posts/nope.html", nil).Render(httptest.NewRecorder())
	assert.ErrorContains(t, err, "posts/nope.html")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 10))
	assert.Equal(t, "абв…", excerpt("абвгд", 3))
}
