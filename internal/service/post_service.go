package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

var (
	// ErrNotAuthor 非作者尝试编辑（页面上渲染为拒绝视图，不是硬错误）
	ErrNotAuthor = errors.New("only the author can edit this post")
)

type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create 校验并落库；校验失败时不产生任何写入
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, map[string]string, error) {
	if fields := ValidatePostInput(in); fields != nil {
		return nil, fields, nil
	}
	post := &model.Post{
		AuthorID: authorID,
		Text:     in.Text,
		Image:    in.Image,
	}
	if in.GroupID != "" {
		gid := in.GroupID
		post.GroupID = &gid
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}

// Edit 仅作者可编辑 text / group / image；author 不可变更
func (s *PostService) Edit(ctx context.Context, postID, editorID string, in PostInput) (*model.Post, map[string]string, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post.AuthorID != editorID {
		return post, nil, ErrNotAuthor
	}
	if fields := ValidatePostInput(in); fields != nil {
		return post, fields, nil
	}
	post.Text = in.Text
	post.GroupID = nil
	if in.GroupID != "" {
		gid := in.GroupID
		post.GroupID = &gid
	}
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}
