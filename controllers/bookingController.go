package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainworksstudio2-dev/brain-works/bookings"
	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/middlewares"
	"github.com/brainworksstudio2-dev/brain-works/utils"
)

func bookingService() *bookings.Service {
	return bookings.NewService(bookings.NewGormStore(database.DB))
}

// CreateBooking handles the public booking form. The server assigns the
// BW-XXXX code; the client only learns it from the response.
func CreateBooking(c *fiber.Ctx) error {
	var in bookings.Input
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	booking, err := bookingService().Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Your booking request has been submitted successfully! We will get back to you shortly.",
		"booking_code": booking.Code,
		"booking":      booking,
	})
}

// GetBookings lists all bookings, newest first. Admin only.
func GetBookings(c *fiber.Ctx) error {
	list, err := bookingService().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// ConfirmBooking moves a pending booking to Confirmed. Admin only.
func ConfirmBooking(c *fiber.Ctx) error {
	booking, err := bookingService().Confirm(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(booking)
}
