package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcustomer "github.com/softhouse/customers/internal/application/customer"
)

// CustomerHandler handles customer CRUD requests
type CustomerHandler struct {
	BaseHandler
	service *appcustomer.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *appcustomer.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers customer routes on the router group
func (h *CustomerHandler) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.GET("", h.GetAll)
		customers.GET("/:customerId", h.GetByID)
		customers.POST("", h.Insert)
		customers.PUT("/:customerId", h.Update)
		customers.DELETE("/:customerId", h.Delete)
	}
}

// GetAll returns every customer
func (h *CustomerHandler) GetAll(c *gin.Context) {
	responses, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetByID returns a single customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "customerId")
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Insert creates a new customer
func (h *CustomerHandler) Insert(c *gin.Context) {
	var req appcustomer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.service.Insert(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// Update replaces an existing customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "customerId")
	if !ok {
		return
	}

	var req appcustomer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	response, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "customerId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
