package usecase_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// MockGateway is a mock implementation of SvnGateway recording its calls
type MockGateway struct {
	copyFunc   func(ctx context.Context, srcURL string, srcRev model.Revision, dstURL, message string) error
	listFunc   func(ctx context.Context, url string, rev model.Revision) ([]model.Dirent, error)
	commitFunc func(ctx context.Context, paths []string, message string) error

	copyCalls   []CopyCall
	listCalls   []ListCall
	commitCalls []CommitCall
}

type CopyCall struct {
	SrcURL  string
	SrcRev  model.Revision
	DstURL  string
	Message string
}

type ListCall struct {
	URL string
	Rev model.Revision
}

type CommitCall struct {
	Paths   []string
	Message string
}

func (m *MockGateway) Copy(ctx context.Context, srcURL string, srcRev model.Revision, dstURL, message string) error {
	m.copyCalls = append(m.copyCalls, CopyCall{SrcURL: srcURL, SrcRev: srcRev, DstURL: dstURL, Message: message})
	if m.copyFunc != nil {
		return m.copyFunc(ctx, srcURL, srcRev, dstURL, message)
	}
	return nil
}

func (m *MockGateway) ListDirectory(ctx context.Context, url string, rev model.Revision) ([]model.Dirent, error) {
	m.listCalls = append(m.listCalls, ListCall{URL: url, Rev: rev})
	if m.listFunc != nil {
		return m.listFunc(ctx, url, rev)
	}
	return nil, nil
}

func (m *MockGateway) CommitPaths(ctx context.Context, paths []string, message string) error {
	m.commitCalls = append(m.commitCalls, CommitCall{Paths: paths, Message: message})
	if m.commitFunc != nil {
		return m.commitFunc(ctx, paths, message)
	}
	return nil
}

var errGateway = errors.New("E160013: path not found")

func newConfig(url string) *model.ReleaseConfig {
	return &model.ReleaseConfig{
		RepositoryURL: url,
		ProjectName:   "myproj",
		Revision:      model.RevisionHead,
	}
}
