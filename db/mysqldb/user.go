package mysqldb

import (
	"context"

	"github.com/akoreshkov/bloghub-be/model"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.Collection("person").
		Insert(user)
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUser(ctx, "firebase_id = ?", id)
}

func (udb *UserDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return udb.getUser(ctx, "username = ?", username)
}

func (udb *UserDB) getUser(ctx context.Context, where ...interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where(where...).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
