package ticket

import (
	"fmt"
	"strings"
)

// Image is a picture attached to a ticket at creation
type Image struct {
	id       string
	ticketID string
	imageURL string
}

func NewImage(ticketID, imageURL string) (*Image, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("image URL is required")
	}
	return &Image{
		id:       newID(),
		ticketID: ticketID,
		imageURL: imageURL,
	}, nil
}

func ReconstructImage(id, ticketID, imageURL string) *Image {
	return &Image{id: id, ticketID: ticketID, imageURL: imageURL}
}

func (i *Image) ID() string {
	return i.id
}

func (i *Image) TicketID() string {
	return i.ticketID
}

func (i *Image) ImageURL() string {
	return i.imageURL
}
