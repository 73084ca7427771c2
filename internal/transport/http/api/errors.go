package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/org"
	"promoback/internal/domain/promoter"
	"promoback/internal/domain/shift"
)

// Error translates a domain error to its HTTP status per the taxonomy:
// domain errors keep their Russian message, internal failures are logged
// and surface a generic English message.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, promoter.ErrWrongPassword),
		errors.Is(err, promoter.ErrBadCode):
		Fail(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, promoter.ErrAwaitingApproval),
		errors.Is(err, promoter.ErrDeactivated),
		errors.Is(err, promoter.ErrNoChannelBinding),
		errors.Is(err, promoter.ErrAdminAccount):
		Fail(w, http.StatusForbidden, err.Error())

	case errors.Is(err, promoter.ErrNotFound),
		errors.Is(err, org.ErrNotFound),
		errors.Is(err, org.ErrPeriodNotFound),
		errors.Is(err, contact.ErrNotFound),
		errors.Is(err, accounting.ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())

	case errors.Is(err, promoter.ErrEmailTaken),
		errors.Is(err, promoter.ErrIPBlocked),
		errors.Is(err, promoter.ErrNotApproved),
		errors.Is(err, org.ErrPeriodConflict),
		errors.Is(err, org.ErrNegativeRate),
		errors.Is(err, org.ErrBadPaymentType),
		errors.Is(err, shift.ErrManualConflict),
		errors.Is(err, shift.ErrInvalidSpan),
		errors.Is(err, contact.ErrBadKind):
		Fail(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		Fail(w, http.StatusInternalServerError, "request deadline exceeded")

	default:
		slog.Error("internal error", "err", err)
		Fail(w, http.StatusInternalServerError, "internal server error")
	}
}
