package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/microblog/internal/config"
	"github.com/d60-Lab/microblog/internal/db"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// 开发环境造数：几个用户、两个分组、一批帖子
func main() {
	configPath := flag.String("config", "", "path to config file")
	postCount := flag.Int("posts", 26, "number of posts to create")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		panic(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	groups := repository.NewGroupRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	seedUsers := make([]*model.User, 0, 3)
	for i := 1; i <= 3; i++ {
		u := &model.User{
			Username:     fmt.Sprintf("user%d", i),
			DisplayName:  fmt.Sprintf("User %d", i),
			PasswordHash: string(hash),
			IsAdmin:      i == 1,
		}
		if err := users.Create(ctx, u); err != nil {
			panic(err)
		}
		seedUsers = append(seedUsers, u)
	}

	seedGroups := make([]*model.Group, 0, 2)
	for i := 1; i <= 2; i++ {
		g := &model.Group{
			Title:       fmt.Sprintf("Group %d", i),
			Slug:        fmt.Sprintf("group-%d", i),
			Description: fmt.Sprintf("Seeded group %d", i),
		}
		if err := groups.Create(ctx, g); err != nil {
			panic(err)
		}
		seedGroups = append(seedGroups, g)
	}

	base := time.Now().Add(-time.Duration(*postCount) * time.Minute)
	for i := 0; i < *postCount; i++ {
		author := seedUsers[i%len(seedUsers)]
		group := seedGroups[i%len(seedGroups)]
		p := &model.Post{
			AuthorID:  author.ID,
			GroupID:   &group.ID,
			Text:      fmt.Sprintf("Seeded post %d by %s", i+1, author.Username),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := posts.Create(ctx, p); err != nil {
			panic(err)
		}
	}

	fmt.Printf("seeded %d users, %d groups, %d posts\n", len(seedUsers), len(seedGroups), *postCount)
}
