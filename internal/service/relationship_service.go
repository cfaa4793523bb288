package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/microblog/internal/repository"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, followerID, authorID string) error
	Unfollow(ctx context.Context, followerID, authorID string) error
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo}
}

// Follow 幂等建边；自关注是业务规则拦截，不落库
func (s *relationshipService) Follow(ctx context.Context, followerID, authorID string) error {
	if followerID == authorID {
		return ErrFollowSelf
	}
	return s.followRepo.Create(ctx, followerID, authorID)
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, authorID string) error {
	return s.followRepo.Delete(ctx, followerID, authorID)
}

func (s *relationshipService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	if followerID == "" {
		return false, nil
	}
	return s.followRepo.Exists(ctx, followerID, authorID)
}
