package liststore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"

	"github.com/lite-lake/ipsync/internal/domain"
	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
)

const (
	updateMessage = "更新 Cloudflare 优选 IP"
	createMessage = "创建 Cloudflare 优选 IP 文件"
)

// GitHubStore keeps a list file in a repository branch through the contents
// API. The blob sha is the write token.
type GitHubStore struct {
	client *github.Client
	loc    entity.FileLocation
}

func NewGitHubStore(loc entity.FileLocation, hc *http.Client) *GitHubStore {
	if hc == nil {
		hc = &http.Client{Timeout: domain.ChannelTimeout}
	}
	return &GitHubStore{client: github.NewClient(hc).WithAuthToken(loc.Token), loc: loc}
}

func (s *GitHubStore) Name() string {
	return fmt.Sprintf("github:%s/%s@%s:%s", s.loc.Owner, s.loc.Repo, s.loc.Branch, s.loc.Path)
}

func (s *GitHubStore) Fetch(ctx context.Context) (contract.ListFile, error) {
	opts := &github.RepositoryContentGetOptions{Ref: s.loc.Branch}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.loc.Owner, s.loc.Repo, s.loc.Path, opts)
	if err != nil {
		if statusOf(resp, err) == http.StatusNotFound {
			return contract.ListFile{}, nil
		}
		return contract.ListFile{}, domain.WrapOp("fetch "+s.Name(), err)
	}
	if file == nil {
		return contract.ListFile{}, fmt.Errorf("fetch %s: path is a directory", s.Name())
	}
	content, err := file.GetContent()
	if err != nil {
		return contract.ListFile{}, domain.WrapOp("decode "+s.Name(), err)
	}
	return contract.ListFile{Content: content, Token: file.GetSHA(), Exists: true}, nil
}

func (s *GitHubStore) Store(ctx context.Context, content string, previous contract.ListFile) error {
	opts := &github.RepositoryContentFileOptions{
		Content: []byte(content),
		Branch:  github.String(s.loc.Branch),
	}

	var resp *github.Response
	var err error
	if previous.Exists {
		opts.Message = github.String(updateMessage)
		opts.SHA = github.String(previous.Token)
		_, resp, err = s.client.Repositories.UpdateFile(ctx, s.loc.Owner, s.loc.Repo, s.loc.Path, opts)
	} else {
		opts.Message = github.String(createMessage)
		_, resp, err = s.client.Repositories.CreateFile(ctx, s.loc.Owner, s.loc.Repo, s.loc.Path, opts)
	}
	if err != nil {
		switch statusOf(resp, err) {
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %s", domain.ErrListConflict, s.Name())
		}
		return domain.WrapOp("store "+s.Name(), err)
	}
	return nil
}

func statusOf(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}
