package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/service"
)

// PostDetail 帖子详情 + 评论列表 + 评论表单
func (h *Handler) PostDetail(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	comments, err := h.comments.ListByPost(c.Request.Context(), post.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "post_detail.tmpl", gin.H{
		"Post":     post,
		"Comments": comments,
	})
}

// CreatePostForm 发帖表单
func (h *Handler) CreatePostForm(c *gin.Context) {
	h.renderPostForm(c, false, nil, service.PostInput{}, nil)
}

// CreatePost 发帖提交；校验失败回显表单，不产生任何写入（包括图片落盘）
func (h *Handler) CreatePost(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	in := service.PostInput{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group"),
	}
	if fields := service.ValidatePostInput(in); fields != nil {
		h.renderPostForm(c, false, nil, in, fields)
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	in.Image = image

	if _, _, err := h.posts.Create(c.Request.Context(), user.ID, in); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/profile/"+user.Username+"/")
}

// EditPostForm 编辑表单；非作者看到拒绝页（200）
func (h *Handler) EditPostForm(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if post.AuthorID != user.ID {
		c.HTML(http.StatusOK, "post_edit_denied.tmpl", gin.H{"Post": post})
		return
	}
	groupID := ""
	if post.GroupID != nil {
		groupID = *post.GroupID
	}
	h.renderPostForm(c, true, post, service.PostInput{Text: post.Text, GroupID: groupID}, nil)
}

// EditPost 编辑提交；作者校验和字段校验都在图片落盘之前
func (h *Handler) EditPost(c *gin.Context) {
	user, _ := middleware.UserFrom(c)
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if post.AuthorID != user.ID {
		c.HTML(http.StatusOK, "post_edit_denied.tmpl", gin.H{"Post": post})
		return
	}

	in := service.PostInput{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group"),
	}
	if fields := service.ValidatePostInput(in); fields != nil {
		h.renderPostForm(c, true, post, in, fields)
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	in.Image = image

	updated, _, err := h.posts.Edit(c.Request.Context(), post.ID, user.ID, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+updated.ID+"/")
}

func (h *Handler) renderPostForm(c *gin.Context, isEdit bool, post *model.Post, in service.PostInput, fields map[string]string) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "create_post.tmpl", gin.H{
		"IsEdit":  isEdit,
		"Post":    post,
		"Groups":  groups,
		"Errors":  fields,
		"Text":    in.Text,
		"GroupID": in.GroupID,
	})
}

// saveImage 保存可选的图片上传，返回 media 相对路径；未上传返回空串。
// 存储名带随机前缀，同名上传互不覆盖。
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	dir := filepath.Join(h.cfg.Media.Root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join("posts", name)), nil
}
