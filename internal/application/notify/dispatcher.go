package notify

import (
	"context"

	"github.com/lite-lake/ipsync/internal/application/publish"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/service"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

const DefaultTitle = "Cloudflare优选IP"

type SenderFactory interface {
	Create(ch *entity.Channel) (contract.Sender, error)
}

type ListPublisher interface {
	Publish(ctx context.Context, group string, kind entity.ChannelKind, assignments []valueobject.Assignment) publish.Result
}

type Config struct {
	Channels  []entity.Channel
	Senders   SenderFactory
	Publisher ListPublisher
	Title     string
}

// Dispatcher fans one family's outcome out to the channels a group enables.
// Channels are attempted in order and a failure never stops the loop.
type Dispatcher struct {
	channels  []entity.Channel
	senders   SenderFactory
	publisher ListPublisher
	title     string
}

func NewDispatcher(cfg *Config) *Dispatcher {
	d := &Dispatcher{
		channels:  cfg.Channels,
		senders:   cfg.Senders,
		publisher: cfg.Publisher,
		title:     cfg.Title,
	}
	if d.title == "" {
		d.title = DefaultTitle
	}
	return d
}

type Outcome struct {
	Sent      int
	Failed    int
	Published int
	Skipped   []string
}

// Message is what one family hands to the dispatcher.
type Message struct {
	Family      valueobject.Family
	Rows        []valueobject.ProbeRow
	Hostnames   []string
	Assignments []valueobject.Assignment
}

func (d *Dispatcher) Dispatch(ctx context.Context, g *entity.ResolveGroup, msg Message) Outcome {
	log := logger.FromContext(ctx).With("family", msg.Family.String())

	var out Outcome
	names := g.ChannelNames()
	if len(names) == 0 {
		log.Info("notifications disabled for group")
		return out
	}

	text := service.RenderSummary(msg.Family, msg.Rows, msg.Hostnames)
	seen := make(map[entity.ChannelKind]bool)
	for _, name := range names {
		kind, err := entity.ParseChannelKind(name)
		if err != nil {
			log.Warn("skipping unknown channel", "channel", name)
			out.Skipped = append(out.Skipped, name)
			continue
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true

		if kind.IsList() {
			if d.publisher == nil {
				log.Warn("list channel enabled but publishing is not wired", "channel", name)
				continue
			}
			if len(msg.Assignments) == 0 {
				log.Info("no assignments, list left untouched", "channel", name)
				continue
			}
			res := d.publisher.Publish(ctx, g.Name, kind, msg.Assignments)
			out.Published += res.Written + res.Unchanged
			out.Failed += res.Failed
			continue
		}

		d.send(ctx, kind, text, &out)
	}

	log.Info("notifications dispatched", "sent", out.Sent, "published", out.Published, "failed", out.Failed)
	return out
}

func (d *Dispatcher) send(ctx context.Context, kind entity.ChannelKind, text string, out *Outcome) {
	log := logger.FromContext(ctx).With("channel", string(kind))

	matched := 0
	for i := range d.channels {
		ch := &d.channels[i]
		if ch.Kind != kind {
			continue
		}
		matched++

		sender, err := d.senders.Create(ch)
		if err != nil {
			log.Error("failed to build sender", "name", ch.Label(), "error", err)
			out.Failed++
			continue
		}
		if err := sender.Send(ctx, d.title, text); err != nil {
			log.Error("push failed", "name", sender.Name(), "error", err)
			out.Failed++
			continue
		}
		log.Info("push sent", "name", sender.Name())
		out.Sent++
	}
	if matched == 0 {
		log.Warn("channel enabled but not configured")
	}
}
