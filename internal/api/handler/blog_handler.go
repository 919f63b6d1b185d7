package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/ports"
)

// BlogHandler serves the content workflow.
type BlogHandler struct {
	blogs ports.BlogService
}

func NewBlogHandler(blogs ports.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

type blogRequest struct {
	Title      string   `json:"title"       validate:"required,min=3,max=200"`
	Content    string   `json:"content"     validate:"required"`
	CoverImage string   `json:"cover_image" validate:"omitempty,url"`
	Excerpt    string   `json:"excerpt"     validate:"omitempty,max=300"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
	Featured   bool     `json:"featured"`
}

func (r blogRequest) input() ports.BlogInput {
	return ports.BlogInput{
		Title:      r.Title,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Excerpt:    r.Excerpt,
		Categories: r.Categories,
		Tags:       r.Tags,
		Published:  r.Published,
		Featured:   r.Featured,
	}
}

// List returns published blogs, filtered and paginated.
//
// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        tag       query     string  false  "Tag filter"
// @Param        author    query     string  false  "Author id filter"
// @Param        search    query     string  false  "Title search"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  map[string]any
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.blogs.List(c.Request().Context(), ports.BlogFilter{
		Category: c.QueryParam("category"),
		Tag:      c.QueryParam("tag"),
		AuthorID: c.QueryParam("author"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return ok(c, result)
}

// Get returns a single blog by slug or id. Drafts are visible only to
// their author and admins; published views bump the view counter.
//
// @Summary      Get blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog id or slug"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	viewerID, viewerRole := viewer(c)
	blog, err := h.blogs.Get(c.Request().Context(), c.Param("id"), viewerID, viewerRole)
	if err != nil {
		return err
	}
	return ok(c, blog)
}

// Mine returns all of the authenticated author's blogs, drafts included.
//
// @Summary      Own blogs
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/blogs/user/blogs [get]
func (h *BlogHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	blogs, err := h.blogs.ListByAuthor(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return ok(c, blogs)
}

// Create publishes or drafts a new blog. Requires a verified account.
//
// @Summary      Create blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      blogRequest  true  "Blog content"
// @Success      201   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	blog, err := h.blogs.Create(c.Request().Context(), user, req.input())
	if err != nil {
		return err
	}
	return created(c, blog)
}

// Update edits a blog. Only the author or an admin may edit.
//
// @Summary      Update blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Blog id"
// @Param        body  body      blogRequest  true  "Blog content"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	blog, err := h.blogs.Update(c.Request().Context(), c.Param("id"), user.ID, user.Role, req.input())
	if err != nil {
		return err
	}
	return ok(c, blog)
}

// Delete removes a blog. Only the author or an admin may delete.
//
// @Summary      Delete blog
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.blogs.Delete(c.Request().Context(), c.Param("id"), user.ID, user.Role); err != nil {
		return err
	}
	return message(c, 200, "blog deleted")
}

// ToggleLike likes or unlikes a blog for the authenticated member.
//
// @Summary      Toggle blog like
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/blogs/{id}/like [post]
func (h *BlogHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	blog, err := h.blogs.ToggleLike(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return err
	}
	return ok(c, blog)
}
