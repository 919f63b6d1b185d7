package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/ports"
)

// CommentHandler serves blog comments.
type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Content  string `json:"content"   validate:"required,min=1,max=2000"`
	ParentID string `json:"parent_id"`
}

// List returns all comments on a blog, newest first.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/blogs/{id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.comments.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, comments)
}

// Add posts a comment and notifies the blog author.
//
// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Blog id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/blogs/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	comment, err := h.comments.Add(c.Request().Context(), c.Param("id"), user.ID, user.Name, req.Content, req.ParentID)
	if err != nil {
		return err
	}
	return created(c, comment)
}

// Delete removes a comment. Only its author or an admin may delete.
//
// @Summary      Delete comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  map[string]any
// @Failure      403        {object}  map[string]any
// @Router       /api/blogs/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request().Context(), c.Param("commentId"), user.ID, user.Role); err != nil {
		return err
	}
	return message(c, 200, "comment deleted")
}

// Like bumps a comment's like counter.
//
// @Summary      Like comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/blogs/{id}/comments/{commentId}/like [post]
func (h *CommentHandler) Like(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	if err := h.comments.Like(c.Request().Context(), c.Param("commentId")); err != nil {
		return err
	}
	return message(c, 200, "comment liked")
}
