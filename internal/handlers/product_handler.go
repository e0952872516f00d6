package handlers

import (
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Reads are
// public; mutations go through the given auth middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Get("/:id", h.HandleGetProduct)
	products.Post("/", authRequired, h.HandleCreateProduct)
	products.Put("/:id", authRequired, h.HandleUpdateProduct)
	products.Delete("/:id", authRequired, h.HandleDeleteProduct)
}

// HandleCreateProduct validates the multipart body and runs the create
// workflow.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Invalid multipart form", nil)
	}

	req, errs := h.validate.CheckProductForm(form.Value)
	files := form.File["imageUrl"]
	if fileErrs := validation.CheckImageFiles(files); fileErrs != nil {
		if errs == nil {
			errs = fileErrs
		} else {
			for field, msg := range fileErrs {
				errs[field] = msg
			}
		}
	}
	if len(errs) > 0 {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	product, err := h.service.CreateProduct(req, files)
	if err != nil {
		return err
	}
	return sendResponse(c, fiber.StatusOK, "Product created successfully", product)
}

// HandleListProducts returns one page of products matching the query.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	q, errs := h.validate.CheckListQueryParams(c.Queries())
	if len(errs) > 0 {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	page, err := h.service.ListProducts(q)
	if err != nil {
		return err
	}
	return sendResponse(c, fiber.StatusOK, "Product listing successfully", page)
}

// HandleGetProduct returns a single product's detail.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validate.CheckProductID(id); errs != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return err
	}
	return sendResponse(c, fiber.StatusOK, "Found product detail", product)
}

// HandleUpdateProduct validates the multipart body and runs the update
// workflow.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validate.CheckProductID(id); errs != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Invalid multipart form", nil)
	}

	req, errs := h.validate.CheckProductForm(form.Value)
	files := form.File["imageUrl"]
	if fileErrs := validation.CheckImageFiles(files); fileErrs != nil {
		if errs == nil {
			errs = fileErrs
		} else {
			for field, msg := range fileErrs {
				errs[field] = msg
			}
		}
	}
	if len(errs) > 0 {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	if err := h.service.UpdateProduct(id, req, files); err != nil {
		return err
	}
	return sendResponse(c, fiber.StatusOK, "Product updated successfully", nil)
}

// HandleDeleteProduct removes a product, its images, and its relations.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validate.CheckProductID(id); errs != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return err
	}
	return sendResponse(c, fiber.StatusOK, "Product successfully deleted", nil)
}
