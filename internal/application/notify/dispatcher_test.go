package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lite-lake/ipsync/internal/application/publish"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type fakeSender struct {
	name  string
	fail  bool
	calls *[]string
	texts *[]string
}

func (s *fakeSender) Name() string { return s.name }

func (s *fakeSender) Send(ctx context.Context, title, text string) error {
	*s.calls = append(*s.calls, s.name)
	*s.texts = append(*s.texts, text)
	if s.fail {
		return errors.New("rejected")
	}
	return nil
}

type fakeFactory struct {
	calls []string
	texts []string
	fail  map[string]bool
}

func (f *fakeFactory) Create(ch *entity.Channel) (contract.Sender, error) {
	if ch.Label() == "broken" {
		return nil, errors.New("missing secret")
	}
	return &fakeSender{name: ch.Label(), fail: f.fail[ch.Label()], calls: &f.calls, texts: &f.texts}, nil
}

type fakePublisher struct {
	kinds       []entity.ChannelKind
	assignments []valueobject.Assignment
}

func (p *fakePublisher) Publish(ctx context.Context, group string, kind entity.ChannelKind, a []valueobject.Assignment) publish.Result {
	p.kinds = append(p.kinds, kind)
	p.assignments = a
	return publish.Result{Written: 1}
}

func message() Message {
	return Message{
		Family: valueobject.FamilyIPv4,
		Rows: []valueobject.ProbeRow{
			{Address: "1.1.1.1", Latency: "100", Speed: "10", Datacenter: "HKG", Complete: true},
		},
		Hostnames:   []string{"a.example.com"},
		Assignments: []valueobject.Assignment{{Hostname: "a.example.com", Address: "1.1.1.1"}},
	}
}

func TestDispatch_FanOutContinuesAfterFailure(t *testing.T) {
	f := &fakeFactory{fail: map[string]bool{"tg1": true}}
	pub := &fakePublisher{}
	d := NewDispatcher(&Config{
		Channels: []entity.Channel{
			{Kind: entity.ChannelTelegram, Name: "tg1"},
			{Kind: entity.ChannelPushPlus, Name: "pp"},
			{Kind: entity.ChannelTelegram, Name: "tg2"},
			{Kind: entity.ChannelWeCom, Name: "broken"},
		},
		Senders:   f,
		Publisher: pub,
	})
	g := &entity.ResolveGroup{Name: "hk", Channels: "telegram bogus github wecom pushplus telegram"}

	out := d.Dispatch(context.Background(), g, message())

	if strings.Join(f.calls, ",") != "tg1,tg2,pp" {
		t.Errorf("send order = %v", f.calls)
	}
	if out.Sent != 2 || out.Failed != 2 || out.Published != 1 {
		t.Errorf("outcome = %+v", out)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "bogus" {
		t.Errorf("skipped = %v", out.Skipped)
	}
	if len(pub.kinds) != 1 || pub.kinds[0] != entity.ChannelGitHub || len(pub.assignments) != 1 {
		t.Errorf("publisher calls = %v %v", pub.kinds, pub.assignments)
	}
	if !strings.Contains(f.texts[0], "1.1.1.1") || !strings.Contains(f.texts[0], "HKG") {
		t.Errorf("summary text = %q", f.texts[0])
	}
}

func TestDispatch_Disabled(t *testing.T) {
	f := &fakeFactory{}
	d := NewDispatcher(&Config{Channels: []entity.Channel{{Kind: entity.ChannelTelegram}}, Senders: f})
	for _, channels := range []string{"", "none", "NONE"} {
		out := d.Dispatch(context.Background(), &entity.ResolveGroup{Name: "hk", Channels: channels}, message())
		if out.Sent != 0 || len(f.calls) != 0 {
			t.Errorf("channels %q: outcome = %+v", channels, out)
		}
	}
}

func TestDispatch_NoAssignmentsKeepsListButSendsSummary(t *testing.T) {
	f := &fakeFactory{}
	pub := &fakePublisher{}
	d := NewDispatcher(&Config{
		Channels:  []entity.Channel{{Kind: entity.ChannelTelegram, Name: "tg"}},
		Senders:   f,
		Publisher: pub,
	})
	msg := message()
	msg.Hostnames = nil
	msg.Assignments = nil

	out := d.Dispatch(context.Background(), &entity.ResolveGroup{Name: "hk", Channels: "github telegram"}, msg)

	if len(pub.kinds) != 0 {
		t.Errorf("publisher should not run without assignments, got %v", pub.kinds)
	}
	if out.Sent != 1 {
		t.Errorf("outcome = %+v", out)
	}
}
