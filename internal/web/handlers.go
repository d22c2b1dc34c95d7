package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

// Handlers provides the HTTP handlers for the web interface.
type Handlers struct {
	templates    *Templates
	store        sessions.Store
	feedService  feeds.Service
	postService  posts.Service
	groupService groups.Service
	userService  users.Service
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(
	templates *Templates,
	store sessions.Store,
	feedService feeds.Service,
	postService posts.Service,
	groupService groups.Service,
	userService users.Service,
) *Handlers {
	return &Handlers{
		templates:    templates,
		store:        store,
		feedService:  feedService,
		postService:  postService,
		groupService: groupService,
		userService:  userService,
	}
}

// viewerData is the identity block every page template receives
type viewerData struct {
	Username string
	LoggedIn bool
}

func (h *Handlers) viewer(r *http.Request) viewerData {
	userID := middleware.GetUserID(r)
	return viewerData{
		LoggedIn: userID != 0,
		Username: middleware.GetUsername(r),
	}
}

// IndexPageData holds data for the global feed page
type IndexPageData struct {
	Viewer viewerData
	Page   *feeds.Page
}

// IndexHandler renders the global feed
// GET /?page=1
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.renderNotFound(w, r)
		return
	}

	page, err := h.feedService.ListAll(r.Context(), pageParam(r))
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	h.render(w, "index.html", IndexPageData{Viewer: h.viewer(r), Page: page})
}

// GroupPageData holds data for a group listing page
type GroupPageData struct {
	Viewer viewerData
	Page   *feeds.GroupPage
}

// GroupHandler renders a group's feed
// GET /group/{slug}?page=1
func (h *Handlers) GroupHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.feedService.ListByGroup(r.Context(), slug, pageParam(r))
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	h.render(w, "group.html", GroupPageData{Viewer: h.viewer(r), Page: page})
}

// GroupIndexPageData holds data for the group index page
type GroupIndexPageData struct {
	Viewer viewerData
	Groups []*groups.Group
}

// GroupIndexHandler renders the list of all groups
// GET /groups
func (h *Handlers) GroupIndexHandler(w http.ResponseWriter, r *http.Request) {
	groupList, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}
	h.render(w, "groups.html", GroupIndexPageData{Viewer: h.viewer(r), Groups: groupList})
}

// ProfilePageData holds data for an author profile page
type ProfilePageData struct {
	Viewer  viewerData
	Page    *feeds.AuthorPage
	Profile *users.Profile
	IsOwner bool
}

// ProfileHandler renders an author's profile with their paginated posts
// GET /profile/{username}?page=1
func (h *Handlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	page, err := h.feedService.ListByAuthor(r.Context(), username, pageParam(r))
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		h.handleListError(w, r, err)
		return
	}

	h.render(w, "profile.html", ProfilePageData{
		Viewer:  h.viewer(r),
		Page:    page,
		Profile: profile,
		IsOwner: middleware.GetUserID(r) == profile.ID,
	})
}

// PostDetailPageData holds data for a single post page
type PostDetailPageData struct {
	Viewer  viewerData
	Post    *posts.PostView
	CanEdit bool
}

// PostDetailHandler renders a single post
// GET /posts/{postID}
func (h *Handlers) PostDetailHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		h.renderNotFound(w, r)
		return
	}

	view, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	h.render(w, "post_detail.html", PostDetailPageData{
		Viewer:  h.viewer(r),
		Post:    view,
		CanEdit: middleware.GetUserID(r) == view.Author.ID,
	})
}

// PostFormPageData holds data for the create/edit form page
type PostFormPageData struct {
	Viewer    viewerData
	Groups    []*groups.Group
	CSRFToken string
	Error     string
	Text      string
	Action    string
	GroupID   int64
	Editing   bool
}

// NewPostHandler renders the create form
// GET /create (auth required)
func (h *Handlers) NewPostHandler(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, PostFormPageData{Action: "/create"})
}

// CreatePostHandler handles the create form submission
// POST /create (auth required)
func (h *Handlers) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	text, groupID := postFormValues(r)
	_, err := h.postService.CreatePost(r.Context(), posts.CreatePostRequest{
		Text:     text,
		GroupID:  groupID,
		AuthorID: middleware.GetUserID(r),
	})
	if err != nil {
		if posts.IsValidationError(err) {
			h.renderPostForm(w, r, PostFormPageData{
				Action: "/create",
				Error:  err.Error(),
				Text:   text,
			})
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	// Same landing as the original flow: back to the author's profile
	http.Redirect(w, r, "/profile/"+url.PathEscape(middleware.GetUsername(r)), http.StatusFound)
}

// EditPostFormHandler renders the edit form
// GET /posts/{postID}/edit (auth required)
func (h *Handlers) EditPostFormHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		h.renderNotFound(w, r)
		return
	}

	view, err := h.postService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	// Non-owners go back to the post instead of seeing the form
	if middleware.GetUserID(r) != view.Author.ID {
		http.Redirect(w, r, "/posts/"+strconv.FormatInt(postID, 10), http.StatusFound)
		return
	}

	data := PostFormPageData{
		Action:  "/posts/" + strconv.FormatInt(postID, 10) + "/edit",
		Text:    view.Text,
		Editing: true,
	}
	if view.Group != nil {
		data.GroupID = view.Group.ID
	}
	h.renderPostForm(w, r, data)
}

// EditPostHandler handles the edit form submission
// POST /posts/{postID}/edit (auth required)
func (h *Handlers) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		h.renderNotFound(w, r)
		return
	}

	if !h.checkCSRF(w, r) {
		return
	}

	detailURL := "/posts/" + strconv.FormatInt(postID, 10)

	text, groupID := postFormValues(r)
	_, err = h.postService.EditPost(r.Context(), posts.EditPostRequest{
		PostID:      postID,
		RequesterID: middleware.GetUserID(r),
		Text:        text,
		GroupID:     groupID,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, detailURL, http.StatusFound)

	case errors.Is(err, posts.ErrNotFound):
		h.renderNotFound(w, r)

	// Forbidden outcome: the post stays untouched, the requester lands on it
	case errors.Is(err, posts.ErrNotAuthor):
		http.Redirect(w, r, detailURL, http.StatusFound)

	case errors.Is(err, posts.ErrAuthRequired):
		http.Redirect(w, r, "/login?next="+detailURL, http.StatusFound)

	case posts.IsValidationError(err):
		h.renderPostForm(w, r, PostFormPageData{
			Action:  detailURL + "/edit",
			Error:   err.Error(),
			Text:    text,
			Editing: true,
		})

	default:
		h.renderServerError(w, r, err)
	}
}

// AuthPageData holds data for the login and signup pages
type AuthPageData struct {
	Viewer    viewerData
	CSRFToken string
	Error     string
	Username  string
	Next      string
}

// LoginPageHandler renders the login form
// GET /login
func (h *Handlers) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrfToken(w, r)
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}
	h.render(w, "login.html", AuthPageData{
		Viewer:    h.viewer(r),
		CSRFToken: token,
		Next:      safeNext(r.URL.Query().Get("next")),
	})
}

// LoginHandler handles the login form submission
// POST /login
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	username := r.FormValue("username")
	next := safeNext(r.FormValue("next"))

	user, err := h.userService.Authenticate(r.Context(), username, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			token, tokenErr := h.csrfToken(w, r)
			if tokenErr != nil {
				h.renderServerError(w, r, tokenErr)
				return
			}
			h.render(w, "login.html", AuthPageData{
				Viewer:    h.viewer(r),
				CSRFToken: token,
				Error:     "Invalid username or password",
				Username:  username,
				Next:      next,
			})
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	if err := h.establishSession(w, r, user); err != nil {
		h.renderServerError(w, r, err)
		return
	}

	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// SignupPageHandler renders the signup form
// GET /signup
func (h *Handlers) SignupPageHandler(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrfToken(w, r)
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}
	h.render(w, "signup.html", AuthPageData{Viewer: h.viewer(r), CSRFToken: token})
}

// SignupHandler handles the signup form submission
// POST /signup
func (h *Handlers) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	username := r.FormValue("username")
	user, err := h.userService.SignUp(r.Context(), users.SignUpRequest{
		Username: username,
		Password: r.FormValue("password"),
	})
	if err != nil {
		message := "Could not create account"
		if errors.Is(err, users.ErrUsernameTaken) {
			message = "Username already taken"
		} else if users.IsValidationError(err) {
			message = err.Error()
		} else {
			h.renderServerError(w, r, err)
			return
		}

		token, tokenErr := h.csrfToken(w, r)
		if tokenErr != nil {
			h.renderServerError(w, r, tokenErr)
			return
		}
		h.render(w, "signup.html", AuthPageData{
			Viewer:    h.viewer(r),
			CSRFToken: token,
			Error:     message,
			Username:  username,
		})
		return
	}

	// New accounts are logged in right away
	if err := h.establishSession(w, r, user); err != nil {
		h.renderServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// LogoutHandler clears the session
// POST /logout
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		slog.Warn("logout: failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) establishSession(w http.ResponseWriter, r *http.Request, user *users.User) error {
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values[middleware.SessionUserIDKey] = user.ID
	session.Values[middleware.SessionUsernameKey] = user.Username
	return session.Save(r, w)
}

// renderPostForm loads the group choices and renders the authoring form
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, data PostFormPageData) {
	groupList, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}
	data.Groups = groupList
	data.Viewer = h.viewer(r)

	if data.CSRFToken == "" {
		token, err := h.csrfToken(w, r)
		if err != nil {
			h.renderServerError(w, r, err)
			return
		}
		data.CSRFToken = token
	}

	h.render(w, "post_form.html", data)
}

// postFormValues extracts text and the optional group choice from a form.
// An empty or zero group select means unassigned.
func postFormValues(r *http.Request) (string, *int64) {
	text := r.FormValue("text")
	var groupID *int64
	if raw := r.FormValue("group"); raw != "" && raw != "0" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			groupID = &id
		}
	}
	return text, groupID
}

func (h *Handlers) handleListError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, feeds.ErrGroupNotFound),
		errors.Is(err, feeds.ErrUserNotFound),
		errors.Is(err, users.ErrUserNotFound):
		h.renderNotFound(w, r)
	case feeds.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.renderServerError(w, r, err)
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.Render(w, name, data); err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handlers) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.Render(w, "notfound.html", struct{ Viewer viewerData }{h.viewer(r)}); err != nil {
		slog.Error("failed to render 404 page", "error", err)
	}
}

func (h *Handlers) renderServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("web handler error", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// pageParam reads the page query parameter. Missing or malformed values
// fall back to page 1 rather than erroring the whole page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// safeNext only allows local redirect targets
func safeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && next[1] == '/') {
		return ""
	}
	return next
}
