package controller

import (
	"net/http"

	"campus-connect-server/usecase"

	"github.com/gin-gonic/gin"
)

// SearchController 顶栏搜索
type SearchController struct {
	search *usecase.SearchUseCase
}

func NewSearchController(search *usecase.SearchUseCase) *SearchController {
	return &SearchController{search: search}
}

// Search GET /api/search?q=xxx
func (sc *SearchController) Search(c *gin.Context) {
	result, err := sc.search.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
