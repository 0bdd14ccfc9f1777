package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

// ItemHandler handles HTTP requests for store items.
type ItemHandler struct {
	service *services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service: service,
	}
}

// Operations implements OperationSet. /items and /stock are the same
// operation; a secondary segment selects a single store_no.
func (h *ItemHandler) Operations() map[string]Operation {
	list := Operation{Name: "list-items", Method: fiber.MethodGet, Handle: h.HandleGetItems}
	return map[string]Operation{
		"create-item":  {Name: "create-item", Method: fiber.MethodPost, Handle: ignoreSecondary(h.HandleCreateItem)},
		"create-items": {Name: "create-items", Method: fiber.MethodPost, Handle: ignoreSecondary(h.HandleCreateItems)},
		"update-item":  {Name: "update-item", Method: fiber.MethodPut, Handle: ignoreSecondary(h.HandleUpdateItem)},
		"delete-item":  {Name: "delete-item", Method: fiber.MethodDelete, Handle: ignoreSecondary(h.HandleDeleteItem)},
		"items":        list,
		"stock":        list,
	}
}

// HandleGetItems lists every item, or the item with store_no when given.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx, storeNo string) error {
	if storeNo == "" {
		items, err := h.service.ListItems(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(items)
	}

	item, err := h.service.GetByStoreNo(c.UserContext(), storeNo)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("No item with store_no '%s' found.", storeNo))
		}
		return err
	}
	return c.JSON(item)
}

// HandleCreateItem creates a single item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return badRequest(err)
	}

	if err := h.service.CreateItem(c.UserContext(), &item); err != nil {
		log.Printf("Error creating item: %v", err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleCreateItems creates every item of a JSON array body. The inserts run
// concurrently and are not atomic.
func (h *ItemHandler) HandleCreateItems(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 || body[0] != '[' {
		return fiber.NewError(fiber.StatusBadRequest, "Expected an array of items")
	}

	var items []models.Item
	if err := c.App().Config().JSONDecoder(body, &items); err != nil {
		return badRequest(err)
	}

	created, err := h.service.CreateItems(c.UserContext(), items)
	if err != nil {
		log.Printf("Error creating %d items: %v", len(items), err)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateItem overwrites the item whose primary key is the body's id.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return badRequest(err)
	}

	if err := h.service.UpdateItem(c.UserContext(), &item); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Item not found")
		}
		log.Printf("Error updating item %d: %v", item.ID, err)
		return err
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

type deleteItemRequest struct {
	ID uint `json:"id"`
}

// HandleDeleteItem deletes the item whose primary key is the body's id.
// Deleting an id that does not exist still succeeds.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	var req deleteItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	if err := h.service.DeleteItem(c.UserContext(), req.ID); err != nil {
		log.Printf("Error deleting item %d: %v", req.ID, err)
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Item deleted.",
	})
}
