package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

type memStore struct {
	file     contract.ListFile
	stores   int
	fetchErr error
	conflict bool
}

func (s *memStore) Name() string { return "mem" }

func (s *memStore) Fetch(ctx context.Context) (contract.ListFile, error) {
	return s.file, s.fetchErr
}

func (s *memStore) Store(ctx context.Context, content string, previous contract.ListFile) error {
	s.stores++
	if s.conflict || previous.Token != s.file.Token {
		return domain.ErrListConflict
	}
	s.file = contract.ListFile{Content: content, Token: previous.Token + "+", Exists: true}
	return nil
}

func assignments(addrs ...string) []valueobject.Assignment {
	var out []valueobject.Assignment
	for _, a := range addrs {
		out = append(out, valueobject.Assignment{Hostname: "a.example.com", Address: a})
	}
	return out
}

func TestPublish_ScenarioC(t *testing.T) {
	store := &memStore{file: contract.ListFile{
		Content: "1.0.0.1:443#prod\n2.2.2.2:8443#other\n[2606::1]:443#prod6\n\n",
		Token:   "sha1",
		Exists:  true,
	}}
	pubs := []entity.ListPublisher{{Group: "hk", FileURL: valueobject.NewSecretRefPlain("x"), Port: 443, Remark: "prod"}}
	p := NewPublisher(pubs, func(*entity.ListPublisher) (contract.ListStore, error) { return store, nil })

	res := p.Publish(context.Background(), "hk", entity.ChannelGitHub, assignments("1.1.1.1", "1.1.1.2", "1.1.1.1"))
	if res.Written != 1 || res.Failed != 0 {
		t.Fatalf("result = %+v", res)
	}
	want := "2.2.2.2:8443#other\n[2606::1]:443#prod6\n1.1.1.1:443#prod\n1.1.1.2:443#prod\n"
	if store.file.Content != want {
		t.Errorf("content = %q, want %q", store.file.Content, want)
	}

	res = p.Publish(context.Background(), "hk", entity.ChannelGitHub, assignments("1.1.1.1", "1.1.1.2"))
	if res.Unchanged != 1 || store.stores != 1 {
		t.Errorf("second publish result = %+v, stores = %d", res, store.stores)
	}
}

func TestPublish_CreatesMissingFile(t *testing.T) {
	store := &memStore{}
	pubs := []entity.ListPublisher{{Group: "hk", FileURL: valueobject.NewSecretRefPlain("x")}}
	p := NewPublisher(pubs, func(*entity.ListPublisher) (contract.ListStore, error) { return store, nil })

	res := p.Publish(context.Background(), "hk", entity.ChannelGitHub, assignments("1.1.1.1", "2606::1"))
	if res.Written != 1 {
		t.Fatalf("result = %+v", res)
	}
	if store.file.Content != "1.1.1.1\n[2606::1]\n" {
		t.Errorf("content = %q", store.file.Content)
	}
}

func TestPublish_FailuresAreIsolated(t *testing.T) {
	broken := &memStore{fetchErr: errors.New("timeout")}
	conflicted := &memStore{conflict: true, file: contract.ListFile{Exists: true, Token: "a"}}
	healthy := &memStore{}
	stores := []*memStore{broken, conflicted, healthy}

	pubs := []entity.ListPublisher{
		{Group: "hk", FileURL: valueobject.NewSecretRefPlain("1"), Port: 1},
		{Group: "hk", FileURL: valueobject.NewSecretRefPlain("2"), Port: 2},
		{Group: "other", FileURL: valueobject.NewSecretRefPlain("x")},
		{Group: "hk", SFTP: &entity.SFTPTarget{Host: "h", User: "u", Path: "/p"}},
		{Group: "hk", FileURL: valueobject.NewSecretRefPlain("3"), Port: 3},
	}
	next := 0
	p := NewPublisher(pubs, func(pub *entity.ListPublisher) (contract.ListStore, error) {
		s := stores[next]
		next++
		return s, nil
	})

	res := p.Publish(context.Background(), "hk", entity.ChannelGitHub, assignments("1.1.1.1"))
	if res.Failed != 2 || res.Written != 1 {
		t.Errorf("result = %+v", res)
	}
	if next != 3 {
		t.Errorf("stores opened = %d, want 3 github publishers of group hk", next)
	}
}
