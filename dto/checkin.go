package dto

import "checkin/models"

// CreateCheckinRequest is the body of POST /checkin, as JSON or multipart form fields
type CreateCheckinRequest struct {
	Date         string   `json:"date" form:"date"`
	ClientName   string   `json:"clientName" form:"clientName"`
	Phone        string   `json:"phone" form:"phone"`
	VehicleModel string   `json:"vehicleModel" form:"vehicleModel"`
	Plate        string   `json:"plate" form:"plate"`
	Service      string   `json:"service" form:"service"`
	PhotoURLs    []string `json:"photoUrls" form:"photoUrls" validate:"dive,required"`
	Signature    string   `json:"signature" form:"signature"`
}

// ToRecord converts the request into an unsaved record
func (r CreateCheckinRequest) ToRecord() models.CheckinRecord {
	return models.CheckinRecord{
		Date:         r.Date,
		ClientName:   r.ClientName,
		Phone:        r.Phone,
		VehicleModel: r.VehicleModel,
		Plate:        r.Plate,
		Service:      r.Service,
		PhotoURLs:    append([]string{}, r.PhotoURLs...),
		Signature:    r.Signature,
	}
}

// UploadResponse is returned by POST /upload
type UploadResponse struct {
	URL string `json:"url"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human readable failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// CheckinEvent is broadcast on the websocket feed
type CheckinEvent struct {
	Type    string                `json:"type"`
	ID      string                `json:"id"`
	Checkin *models.CheckinRecord `json:"checkin,omitempty"`
}
