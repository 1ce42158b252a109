package ports

import (
	"context"

	"github.com/newsboard/newsboard/internal/domain/model"
)

// NewsGateway lists and creates news items on the external API.
type NewsGateway interface {
	List(ctx context.Context) (model.NewsList, error)
	Create(ctx context.Context, req model.CreateNewsRequest) error
}
