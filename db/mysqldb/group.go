package mysqldb

import (
	"context"

	"github.com/akoreshkov/bloghub-be/model"
	"github.com/upper/db/v4"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, group *model.Group) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("blog_group").
		Columns("slug", "title", "description").
		Values(group.Slug, group.Title, group.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroup(ctx, "id = ?", id)
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroup(ctx, "slug = ?", slug)
}

func (gdb *GroupDB) getGroup(ctx context.Context, where ...interface{}) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("*").
		From("blog_group").
		Where(where...).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}
