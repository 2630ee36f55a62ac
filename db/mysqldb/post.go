package mysqldb

import (
	"context"
	"time"

	"github.com/akoreshkov/bloghub-be/db/dao"
	"github.com/akoreshkov/bloghub-be/model"

	appDb "github.com/akoreshkov/bloghub-be/db"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "text", "group_id", "image_blob_name").
		Values(req.AuthorId, req.Text, req.GroupId, req.ImageBlobName).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost never touches author_id or created_at.
func (pdb *PostDB) UpdatePost(ctx context.Context, postId int64, req *appDb.UpdatePost) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set(map[string]interface{}{
			"text":            req.Text,
			"group_id":        req.GroupId,
			"image_blob_name": req.ImageBlobName,
		}).
		Where("id = ?", postId).
		ExecContext(ctx)
	return err
}

// flattenedPost is the joined row shape: post columns plus the author's
// username and the (possibly NULL) group columns from the left join.
type flattenedPost struct {
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	AuthorId         string         `db:"author_id"`
	AuthorUsername   string         `db:"username"`
	GroupId          dao.NullInt64  `db:"group_id"`
	GroupSlug        dao.NullString `db:"group_slug"`
	GroupTitle       dao.NullString `db:"group_title"`
	GroupDescription dao.NullString `db:"group_description"`
	ImageBlobName    dao.NullString `db:"image_blob_name"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (pdb *PostDB) postSelector() db.Selector {
	return pdb.sess.SQL().
		Select("p.id", "p.text", "p.author_id", "person.username",
			"p.image_blob_name", "p.created_at",
			db.Raw("g.id AS group_id"),
			db.Raw("g.slug AS group_slug"),
			db.Raw("g.title AS group_title"),
			db.Raw("g.description AS group_description")).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("blog_group AS g").On("p.group_id = g.id")
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.postSelector().
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	return pdb.listPosts(ctx)
}

func (pdb *PostDB) GetPostsByGroup(ctx context.Context, groupId int64) ([]*model.Post, error) {
	return pdb.listPosts(ctx, "p.group_id = ?", groupId)
}

func (pdb *PostDB) GetPostsByAuthor(ctx context.Context, authorId string) ([]*model.Post, error) {
	return pdb.listPosts(ctx, "p.author_id = ?", authorId)
}

// listPosts returns posts newest-first. The ordering is load-bearing:
// the paginator assumes it.
func (pdb *PostDB) listPosts(ctx context.Context, where ...interface{}) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	if err := pdb.postSelector().
		Where(where...).
		OrderBy("p.created_at DESC", "p.id DESC").
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func (pdb *PostDB) CountPostsByAuthor(ctx context.Context, authorId string) (int64, error) {
	var out struct {
		Count int64 `db:"count"`
	}
	if err := pdb.sess.SQL().
		Select(db.Raw("COUNT(*) AS count")).
		From("post").
		Where("author_id = ?", authorId).
		IteratorContext(ctx).
		One(&out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if groupId := post.GroupId.AsPtr(); groupId != nil {
		group = &model.Group{
			Id:          *groupId,
			Slug:        post.GroupSlug.OrEmpty(),
			Title:       post.GroupTitle.OrEmpty(),
			Description: post.GroupDescription.OrEmpty(),
		}
	}
	return &model.Post{
		Id:   post.Id,
		Text: post.Text,
		Author: &model.User{
			Id:       post.AuthorId,
			Username: post.AuthorUsername,
		},
		Group:         group,
		ImageBlobName: post.ImageBlobName.OrEmpty(),
		CreatedAt:     post.CreatedAt,
	}
}
