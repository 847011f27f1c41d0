package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/documents"
	"github.com/brainworksstudio2-dev/brain-works/middlewares"
	"github.com/brainworksstudio2-dev/brain-works/utils"
)

func writer() *documents.Writer {
	return documents.NewWriter(documents.NewGormStore(database.DB))
}

// CreateInvoice issues a new invoice: the sequence reservation, the number
// formatting and the record insert all happen in one transaction inside the
// writer. A failed request spends no number.
func CreateInvoice(c *fiber.Ctx) error {
	var in documents.InvoiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	session := middlewares.SessionFrom(c)
	if session == nil || session.Profile() == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
	}
	in.AuthorId = session.Profile().Id

	invoice, err := writer().CreateInvoice(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	invoices, err := documents.NewGormStore(database.DB).ListInvoices(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(invoices)
}

func GetInvoice(c *fiber.Ctx) error {
	invoice, err := documents.NewGormStore(database.DB).GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}
