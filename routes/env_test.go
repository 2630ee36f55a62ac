package routes_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	appDb "github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/model"
	"github.com/akoreshkov/bloghub-be/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeDB is an in-memory Database for handler tests. Posts are stored
// oldest-first; listings return copies newest-first like the real
// store.
type fakeDB struct {
	users  map[string]*model.User
	groups []*model.Group
	posts  []*model.Post
	nextId int64
	now    time.Time

	createUserErr error // injected failure for CreateUser
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:  map[string]*model.User{},
		nextId: 1,
		now:    time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeDB) addUser(id, username string) *model.User {
	user := &model.User{Id: id, Username: username}
	f.users[id] = user
	return user
}

func (f *fakeDB) addGroup(slug, title string) *model.Group {
	group := &model.Group{Id: f.nextId, Slug: slug, Title: title, Description: title + " posts"}
	f.nextId++
	f.groups = append(f.groups, group)
	return group
}

func (f *fakeDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	author, ok := f.users[req.AuthorId]
	if !ok {
		return 0, errors.New("foreign key violation: author")
	}
	var group *model.Group
	if req.GroupId != nil {
		if group, _ = f.GetGroupById(ctx, *req.GroupId); group == nil {
			return 0, errors.New("foreign key violation: group")
		}
	}
	post := &model.Post{
		Id:            f.nextId,
		Text:          req.Text,
		Author:        author,
		Group:         group,
		ImageBlobName: req.ImageBlobName,
		CreatedAt:     f.now,
	}
	f.nextId++
	f.now = f.now.Add(time.Minute)
	f.posts = append(f.posts, post)
	return post.Id, nil
}

func (f *fakeDB) UpdatePost(ctx context.Context, postId int64, req *appDb.UpdatePost) error {
	for _, post := range f.posts {
		if post.Id == postId {
			post.Text = req.Text
			post.Group = nil
			if req.GroupId != nil {
				post.Group, _ = f.GetGroupById(ctx, *req.GroupId)
			}
			post.ImageBlobName = req.ImageBlobName
			return nil
		}
	}
	return errors.New("no such post")
}

func (f *fakeDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	for _, post := range f.posts {
		if post.Id == id {
			return post, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	return f.newestFirst(func(*model.Post) bool { return true }), nil
}

func (f *fakeDB) GetPostsByGroup(ctx context.Context, groupId int64) ([]*model.Post, error) {
	return f.newestFirst(func(p *model.Post) bool {
		return p.Group != nil && p.Group.Id == groupId
	}), nil
}

func (f *fakeDB) GetPostsByAuthor(ctx context.Context, authorId string) ([]*model.Post, error) {
	return f.newestFirst(func(p *model.Post) bool { return p.Author.Id == authorId }), nil
}

func (f *fakeDB) CountPostsByAuthor(ctx context.Context, authorId string) (int64, error) {
	posts, _ := f.GetPostsByAuthor(ctx, authorId)
	return int64(len(posts)), nil
}

func (f *fakeDB) newestFirst(match func(*model.Post) bool) []*model.Post {
	var out []*model.Post
	for i := len(f.posts) - 1; i >= 0; i-- {
		if match(f.posts[i]) {
			out = append(out, f.posts[i])
		}
	}
	return out
}

func (f *fakeDB) CreateGroup(ctx context.Context, group *model.Group) (int64, error) {
	created := *group
	created.Id = f.nextId
	f.nextId++
	f.groups = append(f.groups, &created)
	return created.Id, nil
}

func (f *fakeDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	for _, group := range f.groups {
		if group.Id == id {
			return group, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	for _, group := range f.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CreateUser(ctx context.Context, user *model.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	f.users[user.Id] = user
	return nil
}

func (f *fakeDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) GetSQLDB() *sql.DB { return nil }
func (f *fakeDB) Close() error      { return nil }

// fakeVerifier accepts tokens of the form "uid:<uid>".
type fakeVerifier struct{}

func (fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if strings.HasPrefix(idToken, "uid:") {
		return &auth.Token{UID: idToken[4:]}, nil
	}
	return nil, errors.New("invalid token")
}

type fakeBucket struct {
	blobs map[string]bool
}

func (fb *fakeBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	return fb.blobs[blobName], nil
}

func newTestEnv(t *testing.T) (*fakeDB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fdb := newFakeDB()
	r := gin.New()
	routes.AddPostRoutes(&r.RouterGroup, fdb, fakeVerifier{}, &fakeBucket{blobs: map[string]bool{"uploads/cat.png": true}})
	routes.AddGroupRoutes(&r.RouterGroup, fdb)
	routes.AddUserRoutes(&r.RouterGroup, fdb, fakeVerifier{})
	routes.AddHealthCheckRoutes(&r.RouterGroup)
	return fdb, r
}

func perform(t *testing.T, r *gin.Engine, method, path string, body interface{}, userId string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer uid:%v", userId))
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, res)
	require.Equal(t, true, body["success"], "expected success envelope, got %v", res.Body.String())
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data field missing in %v", res.Body.String())
	return data
}

func requireRedirect(t *testing.T, res *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, res.Code)
	require.Equal(t, location, res.Header().Get("Location"))
}
