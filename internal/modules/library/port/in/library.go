package in

import (
	"context"

	"lumina/internal/modules/library/dto"
)

type Usecase interface {
	Refresh(ctx context.Context) ([]dto.DocumentOutput, error)
	Documents(ctx context.Context) ([]dto.DocumentOutput, error)
	OpenExisting(ctx context.Context, id string) (dto.OpenOutput, error)
	DeleteExisting(ctx context.Context, id string) error
	ImportFile(ctx context.Context, path string) (dto.ImportOutput, error)
	Import(ctx context.Context, name string, data []byte) (dto.ImportOutput, error)
}
