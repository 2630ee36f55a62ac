package routes

import (
	"github.com/akoreshkov/bloghub-be/app"
	"github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/middleware"
	"github.com/akoreshkov/bloghub-be/model"
	"github.com/akoreshkov/bloghub-be/util"
	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	db db.Database
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := userRoutes{database}
	group.GET("/profile/:username", util.HandlerWrapper(routes.getProfile, &util.HandlerOpts{}))

	users := group.Group("/users", middleware.Auth(database, verifier, &middleware.AuthConfig{
		AccountNotRequired: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

func (ur *userRoutes) getProfile(c *gin.Context) (interface{}, *util.HTTPError) {
	author, err := ur.db.GetUserByUsername(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if author == nil {
		return nil, util.BuildNotFoundHTTPErr("user")
	}
	posts, err := ur.db.GetPostsByAuthor(c, author.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	page := app.Paginate(posts, app.PageNumberFromQuery(c.Query("page")))
	return gin.H{
		"author":    author,
		"postCount": page.TotalItems,
		"page":      page,
	}, nil
}

type createUserReq struct {
	Username string `json:"username"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	// constraint violations (taken username) are fatal to the request
	// like any other persistence failure
	if err := ur.db.CreateUser(c, &model.User{
		Id:       middleware.MustGetToken(c).UID,
		Username: req.Username,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
