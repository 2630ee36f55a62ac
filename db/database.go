package db

import (
	"context"
	"database/sql"

	"github.com/akoreshkov/bloghub-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	GroupDatabase
	UserDatabase
	GetSQLDB() *sql.DB
	Close() error
}

// CreatePost carries everything needed to persist a new post. AuthorId
// is fixed at creation and never updated afterwards.
type CreatePost struct {
	AuthorId      string
	Text          string
	GroupId       *int64
	ImageBlobName string
}

// UpdatePost deliberately has no author field: authorship is immutable.
type UpdatePost struct {
	Text          string
	GroupId       *int64
	ImageBlobName string
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, postId int64, req *UpdatePost) error
	// GetPostById returns (nil, nil) if no post exists with the id
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	GetPostsByGroup(ctx context.Context, groupId int64) ([]*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorId string) ([]*model.Post, error)
	CountPostsByAuthor(ctx context.Context, authorId string) (int64, error)
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, group *model.Group) (groupId int64, err error)
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	GetUser(context.Context, string) (*model.User, error)
	GetUserByUsername(context.Context, string) (*model.User, error)
}
