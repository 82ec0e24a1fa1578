package publish

import (
	"context"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/service"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

// StoreFactory opens the store behind one publisher config.
type StoreFactory func(pub *entity.ListPublisher) (contract.ListStore, error)

type Result struct {
	Written   int
	Unchanged int
	Failed    int
}

// Publisher merges a group's tagged lines into every list file configured
// for it, leaving lines owned by other configs untouched.
type Publisher struct {
	publishers []entity.ListPublisher
	stores     StoreFactory
}

func NewPublisher(publishers []entity.ListPublisher, stores StoreFactory) *Publisher {
	return &Publisher{publishers: publishers, stores: stores}
}

func (p *Publisher) Publish(ctx context.Context, group string, kind entity.ChannelKind, assignments []valueobject.Assignment) Result {
	log := logger.FromContext(ctx).With("group", group, "channel", string(kind))

	var res Result
	matched := 0
	for i := range p.publishers {
		pub := &p.publishers[i]
		if pub.Group != group || pub.Kind() != kind {
			continue
		}
		matched++

		changed, err := p.publishOne(ctx, pub, assignments)
		switch {
		case err != nil:
			log.Error("failed to publish list", "index", i, "error", err)
			res.Failed++
		case changed:
			res.Written++
		default:
			res.Unchanged++
		}
	}
	if matched == 0 {
		log.Warn("channel enabled but no list publisher is configured for this group")
	}
	return res
}

func (p *Publisher) publishOne(ctx context.Context, pub *entity.ListPublisher, assignments []valueobject.Assignment) (bool, error) {
	store, err := p.stores(pub)
	if err != nil {
		return false, err
	}
	log := logger.FromContext(ctx).With("store", store.Name())

	lines := service.RenderListLines(assignments, pub)
	current, err := store.Fetch(ctx)
	if err != nil {
		return false, err
	}

	content := service.MergeList(current.Content, lines, pub)
	if current.Exists && content == current.Content {
		log.Info("list already up to date")
		return false, nil
	}

	if err := store.Store(ctx, content, current); err != nil {
		return false, domain.WrapOp("write list", err)
	}
	log.Info("list published", "lines", len(lines), "created", !current.Exists)
	return true, nil
}
