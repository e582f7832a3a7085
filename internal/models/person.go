package models

import (
	"fmt"
	"io"
)

// Person is the capability set shared by every billable, displayable party.
type Person interface {
	Profile() Identity
	Display(w io.Writer)
	CalculatePayment() float64
}

// Identity holds the fields common to students and professors.
type Identity struct {
	Name    string `json:"name" validate:"required"`
	Age     int    `json:"age" validate:"min=1,max=130"`
	ID      string `json:"id" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

// Profile returns a copy of the identity.
func (i Identity) Profile() Identity { return i }

// SetAge updates the age within 1..130.
func (i *Identity) SetAge(age int) error {
	if err := validateField("age", age, "min=1,max=130"); err != nil {
		return err
	}
	i.Age = age
	return nil
}

// SetContact updates the contact number.
func (i *Identity) SetContact(contact string) error {
	if err := validateField("contact", contact, "required"); err != nil {
		return err
	}
	i.Contact = contact
	return nil
}

// Date is a calendar date checked with a simple three-field rule.
type Date struct {
	Day   int `json:"day" yaml:"day" validate:"min=1,max=31"`
	Month int `json:"month" yaml:"month" validate:"min=1,max=12"`
	Year  int `json:"year" yaml:"year" validate:"min=1900"`
}

// NewDate validates and builds a Date.
func NewDate(day, month, year int) (Date, error) {
	d := Date{Day: day, Month: month, Year: year}
	if err := validateStruct(d); err != nil {
		return Date{}, err
	}
	return d, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}
