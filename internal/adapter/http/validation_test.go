package http

import (
	"testing"
)

type paymentBody struct {
	Amount int64  `json:"amount" validate:"posmoney"`
	Notes  string `json:"notes"`
}

type idBody struct {
	StaffID string `json:"staff_id" validate:"required,hex32"`
}

func TestValidator_PosMoney(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&paymentBody{Amount: 100}); err != nil {
		t.Fatalf("positive amount rejected: %v", err)
	}
	for _, amt := range []int64{0, -1} {
		err := cv.Validate(&paymentBody{Amount: amt})
		if err == nil {
			t.Fatalf("amount %d accepted", amt)
		}
		fes := ToFieldErrors(err)
		if !containsFieldMsg(fes, "Amount", "positive") {
			t.Fatalf("field errors = %+v", fes)
		}
	}
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&idBody{StaffID: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"}); err != nil {
		t.Fatalf("valid hex32 rejected: %v", err)
	}
	for _, bad := range []string{"", "xyz", "A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4", "a1b2"} {
		if err := cv.Validate(&idBody{StaffID: bad}); err == nil {
			t.Fatalf("staff id %q accepted", bad)
		}
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fes := ToFieldErrors(errTest)
	if len(fes) != 1 || fes[0].Field != "_" {
		t.Fatalf("fes = %+v", fes)
	}
}

var errTest = errFake("fake")

type errFake string

func (e errFake) Error() string { return string(e) }
