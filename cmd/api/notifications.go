package main

import (
	"errors"
	"net/http"

	"fooddash/internal/geo"
	"fooddash/internal/notifications"

	"github.com/google/uuid"
)

type orderNotificationPayload struct {
	OrderID        string `json:"order_id" validate:"required"`
	UserID         string `json:"user_id" validate:"required"`
	Status         string `json:"status" validate:"required"`
	RestaurantName string `json:"restaurant_name"`
	EstimatedTime  string `json:"estimated_time,omitempty"`
}

type driverLocationPayload struct {
	OrderID     string   `json:"order_id" validate:"required"`
	UserID      string   `json:"user_id" validate:"required"`
	DriverName  string   `json:"driver_name" validate:"required"`
	DriverPhone string   `json:"driver_phone,omitempty"`
	DriverLat   float64  `json:"driver_lat" validate:"latitude"`
	DriverLng   float64  `json:"driver_lng" validate:"longitude"`
	CustomerLat float64  `json:"customer_lat" validate:"latitude"`
	CustomerLng float64  `json:"customer_lng" validate:"longitude"`
	DistanceKm  *float64 `json:"distance_km,omitempty" validate:"omitnil,gte=0"`
	ETAMinutes  *int     `json:"eta_minutes,omitempty" validate:"omitnil,gte=0"`
}

type promotionalPayload struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Body           string   `json:"body" validate:"required,max=1000"`
	ImageURL       string   `json:"image_url,omitempty" validate:"omitempty,url"`
	ActionURL      string   `json:"action_url,omitempty"`
	TargetUsers    []string `json:"target_users,omitempty"`
	TargetSegments []string `json:"target_segments,omitempty"`
	RestaurantID   string   `json:"restaurant_id,omitempty"`
}

type orderNotificationResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Total   int  `json:"total"`
}

type driverLocationResponse struct {
	Success    bool    `json:"success"`
	Sent       int     `json:"sent"`
	DistanceKm float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
	Type       string  `json:"type"`
}

type promotionalResponse struct {
	Success      bool       `json:"success"`
	Sent         int        `json:"sent"`
	TotalDevices int        `json:"total_devices"`
	CampaignID   *uuid.UUID `json:"campaign_id,omitempty"`
}

type noDevicesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// orderNotificationHandler godoc
//
//	@Summary		Send an order status push
//	@Description	Notifies every active device of the order's customer.
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		orderNotificationPayload	true	"Order status change"
//	@Success		200		{object}	orderNotificationResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Security		ApiKeyAuth
//	@Router			/notifications/order [post]
func (app *application) orderNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var payload orderNotificationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}

	out, err := app.notifier.NotifyOrderStatus(r.Context(), notifications.OrderEvent{
		OrderID:        payload.OrderID,
		UserID:         payload.UserID,
		Status:         notifications.OrderStatus(payload.Status),
		RestaurantName: payload.RestaurantName,
		EstimatedTime:  payload.EstimatedTime,
	})
	if err != nil {
		app.notificationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderNotificationResponse{Success: true, Sent: out.Sent, Total: out.Total})
}

// driverLocationNotificationHandler godoc
//
//	@Summary		Send a driver proximity push
//	@Description	Picks a very close / nearby / en route message from the driver's distance to the customer.
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		driverLocationPayload	true	"Driver and customer positions"
//	@Success		200		{object}	driverLocationResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Security		ApiKeyAuth
//	@Router			/notifications/driver-location [post]
func (app *application) driverLocationNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var payload driverLocationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}

	out, err := app.notifier.NotifyDriverLocation(r.Context(), notifications.DriverLocation{
		OrderID:     payload.OrderID,
		UserID:      payload.UserID,
		DriverName:  payload.DriverName,
		DriverPhone: payload.DriverPhone,
		Driver:      geo.Point{Lat: payload.DriverLat, Lng: payload.DriverLng},
		Customer:    geo.Point{Lat: payload.CustomerLat, Lng: payload.CustomerLng},
		DistanceKm:  payload.DistanceKm,
		ETAMinutes:  payload.ETAMinutes,
	})
	if err != nil {
		app.notificationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, driverLocationResponse{
		Success:    true,
		Sent:       out.Sent,
		DistanceKm: out.DistanceKm,
		ETAMinutes: out.ETAMinutes,
		Type:       out.Type,
	})
}

// promotionalNotificationHandler godoc
//
//	@Summary		Broadcast a promotion
//	@Description	Sends to target_users, or to every active device, optionally narrowed to target_segments. Delivered in batches.
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		promotionalPayload	true	"Campaign content and targeting"
//	@Success		200		{object}	promotionalResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Security		ApiKeyAuth
//	@Router			/notifications/promotional [post]
func (app *application) promotionalNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var payload promotionalPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err, err.Error())
		return
	}

	out, err := app.notifier.SendPromotion(r.Context(), notifications.Promotion{
		Title:          payload.Title,
		Body:           payload.Body,
		ImageURL:       payload.ImageURL,
		ActionURL:      payload.ActionURL,
		RestaurantID:   payload.RestaurantID,
		TargetUsers:    payload.TargetUsers,
		TargetSegments: payload.TargetSegments,
	})
	if err != nil {
		app.notificationError(w, r, err)
		return
	}

	res := promotionalResponse{Success: true, Sent: out.Sent, TotalDevices: out.Total}
	if out.CampaignID != uuid.Nil {
		res.CampaignID = &out.CampaignID
	}
	writeJSON(w, http.StatusOK, res)
}

// notificationError reports zero recipients as a normal outcome and anything else as a 500.
func (app *application) notificationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, notifications.ErrNoDevices) {
		app.logger.Infow("no active devices", "path", r.URL.Path)
		writeJSON(w, http.StatusOK, noDevicesResponse{Success: false, Message: "No devices found"})
		return
	}
	app.internalServerError(w, r, err, err.Error())
}
