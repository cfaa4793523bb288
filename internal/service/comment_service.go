package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

type CommentService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewCommentService(posts repository.PostRepository, comments repository.CommentRepository) *CommentService {
	return &CommentService{posts: posts, comments: comments}
}

// Add 在目标帖子下追加评论；帖子不存在时返回查询错误
func (s *CommentService) Add(ctx context.Context, postID, authorID, text string) (map[string]string, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if fields := ValidateCommentInput(CommentInput{Text: text}); fields != nil {
		return fields, nil
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}
