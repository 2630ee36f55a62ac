package routes

import (
	"github.com/akoreshkov/bloghub-be/app"
	"github.com/akoreshkov/bloghub-be/db"
	"github.com/akoreshkov/bloghub-be/util"
	"github.com/gin-gonic/gin"
)

type groupRoutes struct {
	db db.Database
}

func AddGroupRoutes(group *gin.RouterGroup, database db.Database) {
	routes := groupRoutes{database}
	groups := group.Group("/groups")
	groups.GET("/:slug", util.HandlerWrapper(routes.getGroupListing, &util.HandlerOpts{}))
}

func (gr *groupRoutes) getGroupListing(c *gin.Context) (interface{}, *util.HTTPError) {
	blogGroup, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if blogGroup == nil {
		return nil, util.BuildNotFoundHTTPErr("group")
	}
	posts, err := gr.db.GetPostsByGroup(c, blogGroup.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"group": blogGroup,
		"page":  app.Paginate(posts, app.PageNumberFromQuery(c.Query("page"))),
	}, nil
}
