package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/documents"
	"github.com/brainworksstudio2-dev/brain-works/middlewares"
	"github.com/brainworksstudio2-dev/brain-works/utils"
)

// CreateReceipt issues a new receipt with the next BW- number.
func CreateReceipt(c *fiber.Ctx) error {
	var in documents.ReceiptInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	session := middlewares.SessionFrom(c)
	if session == nil || session.Profile() == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
	}
	in.AuthorId = session.Profile().Id

	receipt, err := writer().CreateReceipt(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

func GetReceipts(c *fiber.Ctx) error {
	receipts, err := documents.NewGormStore(database.DB).ListReceipts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(receipts)
}

func GetReceipt(c *fiber.Ctx) error {
	receipt, err := documents.NewGormStore(database.DB).GetReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(receipt)
}
