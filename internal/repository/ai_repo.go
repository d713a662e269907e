package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

type AIRepository interface {
	DetectSlots(ctx context.Context, lotID int, filename string, image io.Reader) (*entities.SlotStatusSnapshot, error)
	SlotStatus(ctx context.Context, lotID int) (*entities.SlotStatusSnapshot, error)
}

type aiRepository struct {
	client *backend.Client
}

func NewAIRepository(client *backend.Client) AIRepository {
	return &aiRepository{client: client}
}

func (r *aiRepository) DetectSlots(ctx context.Context, lotID int, filename string, image io.Reader) (*entities.SlotStatusSnapshot, error) {
	id := strconv.Itoa(lotID)
	var snap entities.SlotStatusSnapshot
	err := r.client.PostMultipart(ctx, "/api/v1/ai/detect-slots?parking_lot_id="+id,
		map[string]string{"parking_lot_id": id},
		&backend.FilePart{Field: "image", Filename: filename, Content: image},
		&snap)
	if err != nil {
		return nil, fmt.Errorf("detect slots of lot %d: %w", lotID, err)
	}
	return &snap, nil
}

func (r *aiRepository) SlotStatus(ctx context.Context, lotID int) (*entities.SlotStatusSnapshot, error) {
	var snap entities.SlotStatusSnapshot
	if err := r.client.Get(ctx, fmt.Sprintf("/api/v1/ai/parking-lot/%d/slots", lotID), "", &snap); err != nil {
		return nil, fmt.Errorf("slot status of lot %d: %w", lotID, err)
	}
	return &snap, nil
}
