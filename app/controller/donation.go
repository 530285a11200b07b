package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kinship-canada/ms-go-donations/app/factory"
	"github.com/kinship-canada/ms-go-donations/app/mapper"
	"github.com/kinship-canada/ms-go-donations/app/resolver"
	"github.com/kinship-canada/ms-go-donations/app/schema"
	"github.com/kinship-canada/ms-go-donations/app/service"
	"github.com/kinship-canada/ms-go-donations/app/types"
)

type DonationController struct {
	donationService *service.DonationService
	logger          logrus.FieldLogger
}

func NewDonationController(donationService *service.DonationService) *DonationController {
	return &DonationController{
		donationService: donationService,
		logger:          factory.NewModuleLogger("donations-controller"),
	}
}

func (c *DonationController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *DonationController) ReconcileDonation(ctx echo.Context) error {
	req, err := types.NewReconcileDonationRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.donationService.Reconcile(ctx.Request().Context(), req.Reference)
	if err != nil {
		var validationErr *schema.ValidationError
		var unmappedErr *mapper.UnmappedStatusError
		var upstreamErr *resolver.UpstreamError
		switch {
		case errors.Is(err, resolver.ErrInvalidReference):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, resolver.ErrInternalReference):
			return c.writeError(ctx, http.StatusNotFound, "internal donation ids cannot be reconciled against the processor")
		case errors.Is(err, resolver.ErrIncompleteDonation):
			// Expected for pending async payment methods; retry later.
			return c.writeError(ctx, http.StatusConflict, err.Error())
		case errors.As(err, &validationErr), errors.As(err, &unmappedErr):
			c.logger.WithError(err).Warn("Donation failed validation")
			return c.writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &upstreamErr):
			c.logger.WithError(err).Error("Processor fetch failed")
			return c.writeError(ctx, http.StatusBadGateway, "processor fetch failed")
		default:
			c.logger.WithError(err).Error("Reconcile donation failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.DonationEnvelopeResponse{Donation: mapper.DonationToResponse(item)})
}

func (c *DonationController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
