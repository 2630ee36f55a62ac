package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akoreshkov/bloghub-be/app"
	"github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/middleware"
	"github.com/akoreshkov/bloghub-be/model"
	"github.com/akoreshkov/bloghub-be/util"
	"github.com/gin-gonic/gin"
)

// BlobChecker is the slice of services.StorageBucket the post routes
// need: verifying a client-supplied upload reference.
type BlobChecker interface {
	Exists(ctx context.Context, blobName string) (bool, error)
}

type postRoutes struct {
	db     db.Database
	bucket BlobChecker
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, bucket BlobChecker) {
	routes := postRoutes{database, bucket}
	group.GET("/", util.HandlerWrapper(routes.index, &util.HandlerOpts{}))

	authRequired := middleware.Auth(database, verifier, &middleware.AuthConfig{LoginRedirect: true})
	group.GET("/create", authRequired, util.HandlerWrapper(routes.createForm, &util.HandlerOpts{}))
	group.POST("/create", authRequired, util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))

	posts := group.Group("/posts")
	posts.GET("/:id", util.HandlerWrapper(routes.getPostDetail, &util.HandlerOpts{}))
	posts.GET("/:id/edit", authRequired, util.HandlerWrapper(routes.editForm, &util.HandlerOpts{}))
	posts.POST("/:id/edit", authRequired, util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
}

func (pr *postRoutes) index(c *gin.Context) (interface{}, *util.HTTPError) {
	posts, err := pr.db.GetAllPosts(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"page": app.Paginate(posts, app.PageNumberFromQuery(c.Query("page"))),
	}, nil
}

func (pr *postRoutes) getPostDetail(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.fetchPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	authorPostCount, err := pr.db.CountPostsByAuthor(c, post.Author.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"post":            post,
		"authorPostCount": authorPostCount,
	}, nil
}

func (pr *postRoutes) createForm(c *gin.Context) (interface{}, *util.HTTPError) {
	return gin.H{
		"form":   &app.PostForm{},
		"isEdit": false,
	}, nil
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetLocalUser(c)

	var form app.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	validated, httpErr := pr.validateForm(c, &form, false)
	if validated == nil {
		return nil, httpErr
	}

	if _, err := pr.db.CreatePost(c, &db.CreatePost{
		AuthorId:      user.Id,
		Text:          validated.Text,
		GroupId:       validated.GroupId,
		ImageBlobName: validated.ImageBlobName,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	redirect(c, profilePath(user.Username))
	return nil, nil
}

func (pr *postRoutes) editForm(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.fetchPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if !post.CanEdit(middleware.MustGetLocalUser(c)) {
		// non-authors are sent to the detail view, not an error page
		redirect(c, detailPath(post.Id))
		return nil, nil
	}

	var groupId *int64
	if post.Group != nil {
		groupId = &post.Group.Id
	}
	return gin.H{
		"form": &app.PostForm{
			Text:          post.Text,
			GroupId:       groupId,
			ImageBlobName: post.ImageBlobName,
		},
		"isEdit": true,
	}, nil
}

func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.fetchPost(c)
	if httpErr != nil {
		return nil, httpErr
	}
	if !post.CanEdit(middleware.MustGetLocalUser(c)) {
		// silent authorization denial: no mutation, no error surfaced
		redirect(c, detailPath(post.Id))
		return nil, nil
	}

	var form app.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	validated, httpErr := pr.validateForm(c, &form, true)
	if validated == nil {
		return nil, httpErr
	}

	if err := pr.db.UpdatePost(c, post.Id, &db.UpdatePost{
		Text:          validated.Text,
		GroupId:       validated.GroupId,
		ImageBlobName: validated.ImageBlobName,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	redirect(c, detailPath(post.Id))
	return nil, nil
}

// validateForm runs form validation plus the upload-reference check.
// On field errors it writes the re-render response itself and returns
// (nil, nil); callers stop when validated is nil.
func (pr *postRoutes) validateForm(c *gin.Context, form *app.PostForm, isEdit bool) (*app.ValidatedPost, *util.HTTPError) {
	validated, fieldErrs, err := app.ValidatePostForm(c, pr.db, form)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if fieldErrs == nil {
		fieldErrs = app.FieldErrors{}
	}
	if validated != nil && validated.ImageBlobName != "" {
		exists, err := pr.bucket.Exists(c, validated.ImageBlobName)
		if err != nil {
			return nil, &util.HTTPError{
				Status:  http.StatusInternalServerError,
				Message: "storage error",
			}
		}
		if !exists {
			fieldErrs["imageBlobName"] = "uploaded image not found"
		}
	}
	if len(fieldErrs) > 0 {
		renderFormRes(c, form, fieldErrs, isEdit)
		return nil, nil
	}
	return validated, nil
}

func (pr *postRoutes) fetchPost(c *gin.Context) (*model.Post, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	return post, nil
}

// renderFormRes re-renders the submitted form with field errors. The
// request itself succeeded, so the status stays 200.
func renderFormRes(c *gin.Context, form *app.PostForm, fieldErrs app.FieldErrors, isEdit bool) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"form":    form,
		"errors":  fieldErrs,
		"isEdit":  isEdit,
	})
	c.Abort()
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

func detailPath(postId int64) string {
	return fmt.Sprintf("/posts/%v", postId)
}

func profilePath(username string) string {
	return fmt.Sprintf("/profile/%v", username)
}
