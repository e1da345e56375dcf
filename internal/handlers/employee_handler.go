package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fieldtrack/internal/dateutil"
	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/pagination"
	"fieldtrack/internal/services"
)

// EmployeeHandler handles employee listing, editing, and deletion.
type EmployeeHandler struct {
	employeeService services.EmployeeServicer
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService services.EmployeeServicer) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// BatchDeleteRequest represents the bulk deletion payload.
type BatchDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// parseEmployeeFilter builds the filter from query parameters. A column name
// suffixed with _from or _to becomes an inclusive date bound (YYYY-MM-DD);
// any other parameter is a text filter. Column names are validated by the
// service layer.
func parseEmployeeFilter(c *gin.Context) (services.EmployeeFilter, error) {
	filter := services.EmployeeFilter{
		Text:     map[string]string{},
		DateFrom: map[string]time.Time{},
		DateTo:   map[string]time.Time{},
	}
	for key, values := range c.Request.URL.Query() {
		if key == "page" || key == "page_size" {
			continue
		}
		value := strings.TrimSpace(values[0])
		if value == "" {
			continue
		}
		switch {
		case strings.HasSuffix(key, "_from"):
			parsed, err := dateutil.ParseISO(value)
			if err != nil || parsed == nil {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidDate, "Invalid date for "+key)
			}
			filter.DateFrom[strings.TrimSuffix(key, "_from")] = *parsed
		case strings.HasSuffix(key, "_to"):
			parsed, err := dateutil.ParseISO(value)
			if err != nil || parsed == nil {
				return filter, apperrors.WithMessage(apperrors.ErrInvalidDate, "Invalid date for "+key)
			}
			filter.DateTo[strings.TrimSuffix(key, "_to")] = *parsed
		default:
			filter.Text[key] = value
		}
	}
	return filter, nil
}

// ListEmployees handles the filtered, paginated listing
// @Summary     List employees
// @Description List the brand's employees with optional column filters
// @Tags        employees
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Employee] "Employees"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /employees [get]
// @Security    BearerAuth
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	filter, err := parseEmployeeFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.employeeService.ListEmployees(brand, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEmployee handles fetching a single employee
// @Summary     Get an employee
// @Description Fetch one employee by ID
// @Tags        employees
// @Produce     json
// @Param       id path int true "Employee ID"
// @Success     200 {object} models.Employee "Employee"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /employees/{id} [get]
// @Security    BearerAuth
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(brand, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee handles the direct edit
// @Summary     Update an employee
// @Description Apply a partial field map; dates must be YYYY-MM-DD. The whole request is validated before anything is applied.
// @Tags        employees
// @Accept      json
// @Produce     json
// @Param       id path int true "Employee ID"
// @Param       request body map[string]string true "Fields to update"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid field or date"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /employees/{id} [put]
// @Security    BearerAuth
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input services.UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if len(input) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update"))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(brand, id, input, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles single deletion
// @Summary     Delete an employee
// @Description Remove one employee; audit history is kept
// @Tags        employees
// @Produce     json
// @Param       id path int true "Employee ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /employees/{id} [delete]
// @Security    BearerAuth
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.employeeService.DeleteEmployee(brand, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// BatchDeleteEmployees handles bulk deletion
// @Summary     Delete employees in bulk
// @Description Remove a list of employees by ID
// @Tags        employees
// @Accept      json
// @Produce     json
// @Param       request body BatchDeleteRequest true "Employee IDs"
// @Success     200 {object} map[string]int "Deletion count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /employees/batch-delete [post]
// @Security    BearerAuth
func (h *EmployeeHandler) BatchDeleteEmployees(c *gin.Context) {
	brand, err := getBrand(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deleted, err := h.employeeService.DeleteEmployees(brand, req.IDs)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
