package pkgmgr

import (
	"context"
	"errors"
	"strings"
)

type call struct {
	Dir  string
	Name string
	Args []string
}

func (c call) line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// fakeRunner answers Output calls from a table keyed by command line and
// records every call.
type fakeRunner struct {
	outputs     map[string]string
	runErr      error
	outputCalls []call
	runs        []call
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.runs = append(f.runs, call{Dir: dir, Name: name, Args: args})
	return f.runErr
}

func (f *fakeRunner) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	c := call{Dir: dir, Name: name, Args: args}
	f.outputCalls = append(f.outputCalls, c)
	out, ok := f.outputs[c.line()]
	if !ok {
		return "", errors.New("executable file not found in $PATH")
	}
	return out, nil
}

type fakeResolver struct {
	hosts   map[string][]string
	lookups []string
}

func (r *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	r.lookups = append(r.lookups, host)
	if addrs, ok := r.hosts[host]; ok {
		return addrs, nil
	}
	return nil, errors.New("no such host")
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}
