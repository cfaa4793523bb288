package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/pagination"
	"github.com/d60-Lab/microblog/internal/repository"
)

// Feed 一页列表结果 + 分页元信息
type Feed struct {
	Posts []*model.Post
	Page  pagination.Page
}

// FeedService 四种可见性上下文的列表读取，纯读无副作用
type FeedService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	groups repository.GroupRepository
}

func NewFeedService(posts repository.PostRepository, users repository.UserRepository, groups repository.GroupRepository) *FeedService {
	return &FeedService{posts: posts, users: users, groups: groups}
}

func (s *FeedService) Global(ctx context.Context, requestedPage int) (*Feed, error) {
	total, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, requestedPage)
	posts, err := s.posts.ListAll(ctx, page.Offset, page.Size)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page}, nil
}

// ByGroup slug 不存在时返回底层 not found 错误
func (s *FeedService) ByGroup(ctx context.Context, slug string, requestedPage int) (*model.Group, *Feed, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.posts.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	page := pagination.Paginate(total, requestedPage)
	posts, err := s.posts.ListByGroup(ctx, group.ID, page.Offset, page.Size)
	if err != nil {
		return nil, nil, err
	}
	return group, &Feed{Posts: posts, Page: page}, nil
}

func (s *FeedService) ByAuthor(ctx context.Context, username string, requestedPage int) (*model.User, *Feed, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	page := pagination.Paginate(total, requestedPage)
	posts, err := s.posts.ListByAuthor(ctx, author.ID, page.Offset, page.Size)
	if err != nil {
		return nil, nil, err
	}
	return author, &Feed{Posts: posts, Page: page}, nil
}

func (s *FeedService) Followed(ctx context.Context, followerID string, requestedPage int) (*Feed, error) {
	total, err := s.posts.CountFollowed(ctx, followerID)
	if err != nil {
		return nil, err
	}
	page := pagination.Paginate(total, requestedPage)
	posts, err := s.posts.ListFollowed(ctx, followerID, page.Offset, page.Size)
	if err != nil {
		return nil, err
	}
	return &Feed{Posts: posts, Page: page}, nil
}
