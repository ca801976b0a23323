package in

import (
	"context"

	"lumina/internal/modules/library/dto"
	libraryin "lumina/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.ImportFile(ctx, path)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.DocumentOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.DeleteExisting(ctx, id)
}
