package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/franciscosanchezn/pizzeria-dao/internal/store"
	"github.com/gin-gonic/gin"
)

var log = common.NewLogger()

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas lists every pizza and reports the count in X-Total-Count
	GetAllPizzas(c *gin.Context)
	// GetPizzaByCode retrieves a pizza by its code
	GetPizzaByCode(c *gin.Context)
	// GetMenuByCategory lists every pizza sorted by category
	GetMenuByCategory(c *gin.Context)
	// GetMostExpensive returns the pizza with the highest price
	GetMostExpensive(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza overwrites the pizza matching the code in the path
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its code
	DeletePizza(c *gin.Context)
	// ImportPizzas bulk inserts the posted pizzas, or the built-in menu when the body is empty
	ImportPizzas(c *gin.Context)
}

// PizzaRequest is the payload accepted by create and update
type PizzaRequest struct {
	Code     string          `json:"code" binding:"required,max=10"`
	Name     string          `json:"name" binding:"required,max=255"`
	Price    float64         `json:"price" binding:"gte=0"`
	Category models.Category `json:"category" binding:"required"`
}

func (r PizzaRequest) toPizza() models.Pizza {
	return models.Pizza{Code: r.Code, Name: r.Name, Price: r.Price, Category: r.Category}
}

type controller struct {
	store store.PizzaStore
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(pizzaStore store.PizzaStore) *controller {
	return &controller{store: pizzaStore}
}

// respondStorageError answers 500 for a failed store call
func respondStorageError(ctx *gin.Context, err error, message string) {
	log.WithError(err).WithField("path", ctx.FullPath()).Error(message)
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, message))
}

func respondInvalidBody(ctx *gin.Context, err error) {
	details := map[string]interface{}{"reason": err.Error()}
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPizzaInvalidData, "Invalid request body", details))
}

func respondNotFound(ctx *gin.Context, code string) {
	ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found",
		map[string]interface{}{"code": code}))
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get every pizza on the menu, the total is returned in the X-Total-Count header
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Header 200 {integer} X-Total-Count "Number of pizzas"
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *controller) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.store.ListAll(ctx.Request.Context())
	if err != nil {
		respondStorageError(ctx, err, "Failed to retrieve pizzas")
		return
	}
	ctx.Header("X-Total-Count", strconv.Itoa(len(pizzas)))
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByCode godoc
// @Summary Get pizza by code
// @Description Get a single pizza by its code
// @Tags pizzas
// @Produce json
// @Param code path string true "Pizza code"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas/{code} [get]
func (c *controller) GetPizzaByCode(ctx *gin.Context) {
	code := ctx.Param("code")

	pizza, found, err := c.store.FindByCode(ctx.Request.Context(), code)
	if err != nil {
		respondStorageError(ctx, err, "Failed to retrieve pizza")
		return
	}
	if !found {
		respondNotFound(ctx, code)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// GetMenuByCategory godoc
// @Summary Menu sorted by category
// @Tags menu
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/menu/by-category [get]
func (c *controller) GetMenuByCategory(ctx *gin.Context) {
	pizzas, err := c.store.ListSortedByCategory(ctx.Request.Context())
	if err != nil {
		respondStorageError(ctx, err, "Failed to retrieve menu")
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetMostExpensive godoc
// @Summary Most expensive pizza
// @Tags menu
// @Produce json
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/menu/most-expensive [get]
func (c *controller) GetMostExpensive(ctx *gin.Context) {
	pizza, found, err := c.store.MaxByPrice(ctx.Request.Context())
	if err != nil {
		respondStorageError(ctx, err, "Failed to retrieve pizzas")
		return
	}
	if !found {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "The menu is empty"))
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza with the input payload
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body PizzaRequest true "Pizza"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [post]
func (c *controller) CreatePizza(ctx *gin.Context) {
	var request PizzaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	pizza := request.toPizza()
	if err := c.store.Create(ctx.Request.Context(), pizza); err != nil {
		respondStorageError(ctx, err, "Failed to create pizza")
		return
	}

	ctx.JSON(http.StatusCreated, c.reload(ctx, pizza))
}

// reload reads back the stored row so the response carries the database ID.
// When the read fails the written values are returned as they are.
func (c *controller) reload(ctx *gin.Context, pizza models.Pizza) models.Pizza {
	stored, found, err := c.store.FindByCode(ctx.Request.Context(), pizza.Code)
	switch {
	case err != nil:
		log.WithError(err).WithField("code", pizza.Code).Warn("Could not read back the written pizza")
	case !found:
		log.WithField("code", pizza.Code).Warn("Written pizza not found on read back")
	default:
		return stored
	}
	return pizza
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Overwrite every field of the pizza matching the code
// @Tags pizzas
// @Accept json
// @Produce json
// @Param code path string true "Pizza code"
// @Param pizza body PizzaRequest true "Pizza"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{code} [put]
func (c *controller) UpdatePizza(ctx *gin.Context) {
	code := ctx.Param("code")

	var request PizzaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	pizza := request.toPizza()
	affected, err := c.store.Update(ctx.Request.Context(), code, pizza)
	if err != nil {
		respondStorageError(ctx, err, "Failed to update pizza")
		return
	}
	if affected == 0 {
		respondNotFound(ctx, code)
		return
	}
	ctx.JSON(http.StatusOK, c.reload(ctx, pizza))
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its code
// @Tags pizzas
// @Param code path string true "Pizza code"
// @Success 204
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{code} [delete]
func (c *controller) DeletePizza(ctx *gin.Context) {
	code := ctx.Param("code")

	affected, err := c.store.Delete(ctx.Request.Context(), code)
	if err != nil {
		respondStorageError(ctx, err, "Failed to delete pizza")
		return
	}
	if affected == 0 {
		respondNotFound(ctx, code)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ImportPizzas godoc
// @Summary Bulk import pizzas
// @Description Insert the posted pizzas in committed batches. Without a body the built-in menu is imported.
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizzas body []PizzaRequest false "Pizzas to import"
// @Success 201 {object} store.BulkResult
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/imports [post]
func (c *controller) ImportPizzas(ctx *gin.Context) {
	var source store.PizzaSource = store.CatalogSource{}

	var requests []PizzaRequest
	err := ctx.ShouldBindJSON(&requests)
	switch {
	case errors.Is(err, io.EOF):
		log.Debug("Empty import body, importing the built-in menu")
	case err != nil:
		respondInvalidBody(ctx, err)
		return
	default:
		pizzas := make([]models.Pizza, 0, len(requests))
		for _, request := range requests {
			pizzas = append(pizzas, request.toPizza())
		}
		source = store.StaticSource(pizzas)
	}

	result, err := c.store.BulkInsert(ctx.Request.Context(), source)
	if err != nil {
		log.WithError(err).WithField("committed_batches", result.Batches).Error("Bulk import failed")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrPizzaImportFail, "Bulk import failed",
			map[string]interface{}{"batches": result.Batches, "inserted": result.Inserted}))
		return
	}
	ctx.JSON(http.StatusCreated, result)
}
