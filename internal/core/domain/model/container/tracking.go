package container

import (
	"errors"
	"strings"
	"time"

	"morna/internal/pkg/errs"
	"morna/internal/pkg/guard"
)

// ErrTrackingIsNotConstructed is returned when Tracking was not created by NewTracking.
var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

// Tracking is the carrier data captured when a container is sent.
type Tracking struct { //nolint:recvcheck //using for validation
	number     string
	company    string
	arriveDate time.Time
	guard      guard.ConstructorGuard
}

func NewTracking(number, company string, arriveDate time.Time) (Tracking, error) {
	number = strings.TrimSpace(number)
	company = strings.TrimSpace(company)

	var problems []error
	if number == "" {
		problems = append(problems, errs.NewValueIsRequiredError("trackingNumber"))
	}
	if company == "" {
		problems = append(problems, errs.NewValueIsRequiredError("trackingCompany"))
	}
	if arriveDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("arriveDate"))
	}
	if err := errors.Join(problems...); err != nil {
		return Tracking{}, err
	}

	return Tracking{
		number:     number,
		company:    company,
		arriveDate: arriveDate.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (t Tracking) Number() string { return t.number }
func (t Tracking) Company() string { return t.company }
func (t Tracking) ArriveDate() time.Time { return t.arriveDate }

func (t Tracking) Validate() error {
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}
