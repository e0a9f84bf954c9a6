package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/svnrelease/pkg/domain/types"
	"github.com/m-mizutani/svnrelease/pkg/usecase"
)

func TestVerifyURLStep_Run(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "trunk", url: "https://host/repo/myproj/trunk"},
		{name: "trunk with trailing slash", url: "https://host/repo/myproj/trunk/"},
		{name: "trunk at repository root", url: "svn://host/trunk"},
		{name: "branch named after project", url: "https://host/repo/myproj/branches/myproj"},
		{name: "branch", url: "https://host/repo/myproj/branches/myproj-1.x"},
		{name: "tag", url: "https://host/repo/myproj/tags/myproj-1.0", wantErr: true},
		{name: "project root", url: "https://host/repo/myproj", wantErr: true},
		{name: "branches container", url: "https://host/repo/myproj/branches", wantErr: true},
		{name: "below trunk", url: "https://host/repo/myproj/trunk/src", wantErr: true},
		{name: "unset", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &MockGateway{}
			err := usecase.NewVerifyURL().Run(context.Background(), newConfig(tt.url), gateway)

			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
			} else {
				gt.NoError(t, err)
			}

			gt.A(t, gateway.listCalls).Length(0)
			gt.A(t, gateway.copyCalls).Length(0)
			gt.A(t, gateway.commitCalls).Length(0)
		})
	}
}

func TestVerifyURLStep_NilConfig(t *testing.T) {
	err := usecase.NewVerifyURL().Run(context.Background(), nil, &MockGateway{})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
}
