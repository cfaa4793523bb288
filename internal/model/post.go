package model

import "time"

// Post 内容主体；作者创建后不可变更，列表一律按 created_at 倒序
type Post struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    User
	GroupID   *string `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group
	Text      string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:varchar(255)"` // media 相对路径，如 posts/small.gif
	CreatedAt time.Time `gorm:"index:idx_post_created"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
