package usecase

import (
	"context"

	"github.com/dustin/go-humanize"

	"lumina/internal/modules/library/domain"
	"lumina/internal/modules/library/dto"
	libraryin "lumina/internal/modules/library/port/in"
	"lumina/internal/modules/library/service"
)

type Interactor struct {
	svc *service.LibraryService
}

func NewInteractor(svc *service.LibraryService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Refresh(ctx context.Context) ([]dto.DocumentOutput, error) {
	return toOutputs(i.svc.Refresh(ctx)), nil
}

func (i *Interactor) Documents(_ context.Context) ([]dto.DocumentOutput, error) {
	return toOutputs(i.svc.Documents()), nil
}

func (i *Interactor) OpenExisting(ctx context.Context, id string) (dto.OpenOutput, error) {
	file, err := i.svc.OpenExisting(ctx, id)
	if err != nil {
		return dto.OpenOutput{}, err
	}
	return dto.OpenOutput{ID: file.ID, Name: file.Name, Data: file.Data}, nil
}

func (i *Interactor) DeleteExisting(ctx context.Context, id string) error {
	return i.svc.DeleteExisting(ctx, id)
}

func (i *Interactor) Import(ctx context.Context, name string, data []byte) (dto.ImportOutput, error) {
	return i.importResult(i.svc.Import(ctx, name, data))
}

func (i *Interactor) ImportFile(ctx context.Context, path string) (dto.ImportOutput, error) {
	return i.importResult(i.svc.ImportFile(ctx, path))
}

func (i *Interactor) importResult(file domain.DocumentFile, stored bool, err error) (dto.ImportOutput, error) {
	if err != nil {
		return dto.ImportOutput{}, err
	}
	out := dto.ImportOutput{Stored: stored, Name: file.Name, Data: file.Data}
	if stored {
		out.Document = toOutput(file.Document)
	}
	return out, nil
}

func toOutput(doc domain.Document) dto.DocumentOutput {
	return dto.DocumentOutput{
		ID:        doc.ID,
		Name:      doc.Name,
		Size:      doc.Size,
		SizeLabel: humanize.Bytes(uint64(doc.Size)),
		CreatedAt: doc.CreatedAt,
	}
}

func toOutputs(docs []domain.Document) []dto.DocumentOutput {
	out := make([]dto.DocumentOutput, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toOutput(doc))
	}
	return out
}
