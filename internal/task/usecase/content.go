package usecase

import (
	"context"

	"github.com/gelugu/judah-bot/internal/model"
	"github.com/gelugu/judah-bot/pkg/blocktext"
)

func (uc *implUseCase) Content(ctx context.Context, sc model.Scope, taskID string) string {
	blocks, err := uc.repo.GetBlocks(ctx, taskID)
	if err != nil {
		uc.l.Warnf(ctx, "Content: task=%s: %v", taskID, err)
		return ""
	}
	return blocktext.RenderAll(blocks)
}
