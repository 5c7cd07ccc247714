package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"companycrm/internal/searchclient"
	"companycrm/internal/services"
)

// DefaultSearchLimit is the result count used when limit is omitted.
const DefaultSearchLimit = 5

// SearchHandler handles search requests proxied to the search backend.
type SearchHandler struct {
	searchService services.SearchServicer
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService services.SearchServicer) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRequest represents the query parameters of a semantic search.
type SearchRequest struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// AdvancedSearchRequest represents the filters of an advanced search. Every
// filter is optional and is forwarded as typed; the backend decides how to
// match it. Money filters without a readable amount are ignored by the backend.
type AdvancedSearchRequest struct {
	Name                 string `form:"name" binding:"omitempty,max=200,filter_text"`
	Sector               string `form:"sector" binding:"omitempty,max=200,filter_text"`
	Valuation            string `form:"valuation" binding:"omitempty,max=200,filter_text"`
	Website              string `form:"website" binding:"omitempty,max=500,filter_text"`
	Investors            string `form:"investors" binding:"omitempty,max=500,filter_text"`
	TotalFunding         string `form:"total_funding" binding:"omitempty,max=200,filter_text"`
	SinarmasInterest     string `form:"sinarmas_interest" binding:"omitempty,max=200,filter_text"`
	ShareTransferAllowed string `form:"share_transfer_allowed" binding:"omitempty,max=200,filter_text"`
}

// Filters converts the request into backend filters.
func (r AdvancedSearchRequest) Filters() searchclient.Filters {
	return searchclient.Filters{
		Name:                 r.Name,
		Sector:               r.Sector,
		Valuation:            r.Valuation,
		Website:              r.Website,
		Investors:            r.Investors,
		TotalFunding:         r.TotalFunding,
		SinarmasInterest:     r.SinarmasInterest,
		ShareTransferAllowed: r.ShareTransferAllowed,
	}
}

// Search handles a semantic company search.
// @Summary     Search companies
// @Description Semantic search over companies; results are normalized view models
// @Tags        search
// @Produce     json
// @Param       q     query string true  "Search text"
// @Param       limit query int    false "Maximum results (1-50, default 5)"
// @Success     200 {array}  company.CompanyViewModel "Matching companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Search backend unavailable"
// @Router      /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	if req.Limit == 0 {
		req.Limit = DefaultSearchLimit
	}

	views, err := h.searchService.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// AdvancedSearch handles a filtered company search.
// @Summary     Advanced company search
// @Description Filter companies by field; only records matching every provided filter are returned
// @Tags        search
// @Produce     json
// @Param       name                   query string false "Name (partial match)"
// @Param       sector                 query string false "Exact sector"
// @Param       valuation              query string false "Minimum valuation, e.g. $500M; ignored without an amount"
// @Param       website                query string false "Website (partial match)"
// @Param       investors              query string false "Investors (partial match)"
// @Param       total_funding          query string false "Minimum total funding, e.g. 1.2B; ignored without an amount"
// @Param       sinarmas_interest      query string false "Sinarmas interest"
// @Param       share_transfer_allowed query string false "Share transfer policy (case-insensitive exact match)"
// @Success     200 {array}  company.CompanyViewModel "Matching companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Search backend unavailable"
// @Router      /advanced-search [get]
func (h *SearchHandler) AdvancedSearch(c *gin.Context) {
	var req AdvancedSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	views, err := h.searchService.AdvancedSearch(c.Request.Context(), req.Filters())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
