package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"companycrm/internal/pagination"
	"companycrm/internal/services"
)

// CompanyHandler serves companies from the snapshot store.
type CompanyHandler struct {
	companyService services.CompanyServicer
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService services.CompanyServicer) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies handles listing stored companies.
// @Summary     List companies
// @Description Paginated list of companies from the last sheet sync, ordered by name
// @Tags        companies
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[company.CompanyViewModel] "Paginated companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	result, err := h.companyService.ListCompanies(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCompany handles fetching one stored company by name.
// @Summary     Get a company
// @Description Get one company from the snapshot store by name (case-insensitive)
// @Tags        companies
// @Produce     json
// @Param       name path string true "Company name"
// @Success     200 {object} company.CompanyViewModel "Company"
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies/{name} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	view, err := h.companyService.GetCompanyByName(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
