package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/usecase"
)

type fakeStep struct {
	name  string
	err   error
	calls int
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Run(ctx context.Context, cfg *model.ReleaseConfig, gateway interfaces.SvnGateway) error {
	s.calls++
	return s.err
}

type fakeNotifier struct {
	results []*model.PipelineResult
	err     error
}

func (n *fakeNotifier) Notify(ctx context.Context, result *model.PipelineResult) error {
	n.results = append(n.results, result)
	return n.err
}

func TestPipeline_Succeeded(t *testing.T) {
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b"}
	notifier := &fakeNotifier{}

	p := usecase.NewPipeline("test", &MockGateway{}, []interfaces.ReleaseStep{a, b}, usecase.WithNotifier(notifier))
	gt.Value(t, p.State()).Equal(model.PipelineIdle)
	gt.A(t, p.Steps()).Length(2)

	result, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.NoError(t, err)

	gt.Value(t, p.State()).Equal(model.PipelineSucceeded)
	gt.Value(t, result.State).Equal(model.PipelineSucceeded)
	gt.Value(t, result.Executed).Equal([]string{"a", "b"})
	gt.String(t, result.FailedStep).Equal("")
	gt.Value(t, result.FinishedAt.Before(result.StartedAt)).Equal(false)
	gt.Number(t, a.calls).Equal(1)
	gt.Number(t, b.calls).Equal(1)

	gt.A(t, notifier.results).Length(1)
	gt.Value(t, notifier.results[0]).Equal(result)
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	errStep := errors.New("step failed")
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b", err: errStep}
	c := &fakeStep{name: "c"}

	p := usecase.NewPipeline("test", &MockGateway{}, []interfaces.ReleaseStep{a, b, c})

	result, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, errStep)).Equal(true)

	gt.Value(t, p.State()).Equal(model.PipelineFailed)
	gt.Value(t, result.State).Equal(model.PipelineFailed)
	gt.Value(t, result.Executed).Equal([]string{"a", "b"})
	gt.String(t, result.FailedStep).Equal("b")
	gt.Number(t, a.calls).Equal(1)
	gt.Number(t, b.calls).Equal(1)
	gt.Number(t, c.calls).Equal(0)
}

func TestPipeline_Empty(t *testing.T) {
	p := usecase.NewPipeline("empty", &MockGateway{}, nil)

	result, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.NoError(t, err)
	gt.Value(t, result.State).Equal(model.PipelineSucceeded)
	gt.A(t, result.Executed).Length(0)
}

func TestPipeline_RunsOnce(t *testing.T) {
	a := &fakeStep{name: "a"}
	p := usecase.NewPipeline("test", &MockGateway{}, []interfaces.ReleaseStep{a})

	_, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.NoError(t, err)

	result, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.Error(t, err)
	gt.Value(t, result == nil).Equal(true)
	gt.Number(t, a.calls).Equal(1)
	gt.Value(t, p.State()).Equal(model.PipelineSucceeded)
}

func TestPipeline_NotifierErrorIgnored(t *testing.T) {
	failing := &fakeNotifier{err: errors.New("webhook unreachable")}
	ok := &fakeNotifier{}

	p := usecase.NewPipeline("test", &MockGateway{},
		[]interfaces.ReleaseStep{&fakeStep{name: "a"}},
		usecase.WithNotifier(failing),
		usecase.WithNotifier(ok),
	)

	result, err := p.Run(context.Background(), newConfig("https://host/repo/myproj/trunk"))
	gt.NoError(t, err)
	gt.Value(t, result.State).Equal(model.PipelineSucceeded)
	gt.A(t, failing.results).Length(1)
	gt.A(t, ok.results).Length(1)
}

func TestPipeline_UniqueRunID(t *testing.T) {
	cfg := newConfig("https://host/repo/myproj/trunk")

	r1, err := usecase.NewPipeline("test", &MockGateway{}, nil).Run(context.Background(), cfg)
	gt.NoError(t, err)
	r2, err := usecase.NewPipeline("test", &MockGateway{}, nil).Run(context.Background(), cfg)
	gt.NoError(t, err)

	gt.Value(t, r1.RunID == r2.RunID).Equal(false)
}
