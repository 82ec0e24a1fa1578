package plugin

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/lite-lake/ipsync/internal/domain/contract"
	"github.com/lite-lake/ipsync/internal/domain/entity"
)

type recordingRunner struct {
	calls []contract.ServiceAction
	fail  map[contract.ServiceAction]bool
}

func (r *recordingRunner) Run(ctx context.Context, service string, action contract.ServiceAction) error {
	r.calls = append(r.calls, action)
	if r.fail[action] {
		return errors.New("init script failed")
	}
	return nil
}

func TestController_Lifecycle(t *testing.T) {
	runner := &recordingRunner{}
	var slept []time.Duration
	c := NewController(&entity.Plugin{Name: "shellcrash"}, runner, func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})
	g := &entity.ResolveGroup{Account: "cf", V4Quota: 2}

	if !c.Stop(context.Background(), g) {
		t.Fatal("Stop() = false, want true")
	}
	if c.State() != StateStopped {
		t.Errorf("state = %v", c.State())
	}
	c.Restart(context.Background())
	c.Restart(context.Background())
	c.Finish(context.Background())
	c.Finish(context.Background())

	want := []contract.ServiceAction{contract.ActionStop, contract.ActionRestart, contract.ActionRestart, contract.ActionStart}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
	if len(slept) != 2 || slept[0] != 10*time.Second {
		t.Errorf("settle sleeps = %v", slept)
	}
	if c.State() != StateIdle {
		t.Errorf("final state = %v", c.State())
	}
}

func TestController_StopFailureDisarms(t *testing.T) {
	runner := &recordingRunner{fail: map[contract.ServiceAction]bool{contract.ActionStop: true}}
	c := NewController(&entity.Plugin{Name: "shellcrash"}, runner, nil)

	if c.Stop(context.Background(), &entity.ResolveGroup{Account: "cf", V4Quota: 1}) {
		t.Error("Stop() = true after failure")
	}
	c.Restart(context.Background())
	c.Finish(context.Background())
	if len(runner.calls) != 1 {
		t.Errorf("calls = %v, want only the failed stop", runner.calls)
	}
}

func TestController_Policy(t *testing.T) {
	tests := []struct {
		name   string
		plugin *entity.Plugin
		group  *entity.ResolveGroup
		want   bool
	}{
		{"no plugin", nil, &entity.ResolveGroup{Account: "cf", V4Quota: 1}, false},
		{"unspecified plugin", &entity.Plugin{Name: "unspecified"}, &entity.ResolveGroup{Account: "cf", V4Quota: 1}, false},
		{"unspecified account", &entity.Plugin{Name: "p"}, &entity.ResolveGroup{Account: "unspecified", V4Quota: 1}, false},
		{"passthrough", &entity.Plugin{Name: "p"}, &entity.ResolveGroup{Account: "cf"}, false},
		{"mutation", &entity.Plugin{Name: "p"}, &entity.ResolveGroup{Account: "cf", V6Quota: 1}, true},
		{"always", &entity.Plugin{Name: "p", PausePolicy: entity.PauseAlways}, &entity.ResolveGroup{Account: "unspecified"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			c := NewController(tt.plugin, runner, nil)
			if got := c.Stop(context.Background(), tt.group); got != tt.want {
				t.Errorf("Stop() = %v, want %v", got, tt.want)
			}
			if !tt.want && len(runner.calls) != 0 {
				t.Errorf("unexpected calls %v", runner.calls)
			}
		})
	}
}

func TestController_FinishAfterRestartFailure(t *testing.T) {
	runner := &recordingRunner{fail: map[contract.ServiceAction]bool{contract.ActionRestart: true}}
	c := NewController(&entity.Plugin{Name: "p"}, runner, nil)
	c.Stop(context.Background(), &entity.ResolveGroup{Account: "cf", V4Quota: 1})
	c.Restart(context.Background())
	c.Finish(context.Background())

	want := []contract.ServiceAction{contract.ActionStop, contract.ActionRestart, contract.ActionStart}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
}
