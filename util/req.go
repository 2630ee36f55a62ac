package util

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	log.Println("database error occurred", err)
	return &DbHTTPErr
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

func BuildNotFoundHTTPErr(resource string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%v not found", resource),
	}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

type HandlerOpts struct {
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a value-returning handler into a gin handler
// with the standard {"success", "data"/"message"} envelope. Handlers
// that already wrote a response (e.g. a redirect) return nil, nil after
// aborting.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if c.IsAborted() {
			return
		}
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}
