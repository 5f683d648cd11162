// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type commitArgs struct {
	Path    string `short:"p" help:"Working copy path"`
	Message string `short:"m" help:"Log message"`
}

type propSetArgs struct {
	Name  string
	Value string
	Path  string
}

type diffArgs struct {
	Files []string `variadic:"true"`
}

type resolveArgs struct {
	Accept string
	Files  []string `variadic:"true"`
}

type logArgs struct {
	Limit   int  `default:"10"`
	Verbose bool `short:"v" default:"false"`
	hidden  int
}

var errFail = errors.New("fail")

type svn struct {
	calls []string
}

func (*svn) CommandDocs() Docs {
	return Docs{
		Description: "Subversion-ish client",
		Methods: map[string]MethodDoc{
			"Status": {Short: "st", Help: "Show working copy status"},
			"Commit": {Short: "ci", Help: "Send changes to the repository"},
		},
	}
}

func (s *svn) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *svn) Status(ctx context.Context) error {
	s.record("status")
	return nil
}

func (s *svn) Commit(ctx context.Context, a commitArgs) error {
	s.record("commit %s %s", a.Path, a.Message)
	return nil
}

func (s *svn) PropSet(a propSetArgs) error {
	s.record("propset %s %s %s", a.Name, a.Value, a.Path)
	return nil
}

func (s *svn) Diff(ctx context.Context, a diffArgs) error {
	s.record("diff %v", a.Files)
	return nil
}

func (s *svn) Resolve(ctx context.Context, a *resolveArgs) error {
	s.record("resolve %s %v", a.Accept, a.Files)
	return nil
}

func (s *svn) Log(a logArgs) {
	s.record("log %d %t", a.Limit, a.Verbose)
}

func (s *svn) Fail(ctx context.Context) error { return errFail }

func (s *svn) Boom() error { panic("boom") }

func (s *svn) String() string { return "svn" }

func mustReflect(t *testing.T, v any, opts ...Option) *Component {
	t.Helper()
	c, err := Reflect(reflect.TypeOf(v), opts...)
	if err != nil {
		t.Fatalf("Reflect(%T) error = %v", v, err)
	}
	return c
}

func methodNames(c *Component) []string {
	var names []string
	for _, m := range c.Methods() {
		names = append(names, m.Name())
	}
	return names
}

func TestReflect(t *testing.T) {
	c := mustReflect(t, &svn{})

	if c.Name() != "svn" {
		t.Errorf("Name() = %q, want %q", c.Name(), "svn")
	}
	if c.Description() != "Subversion-ish client" {
		t.Errorf("Description() = %q", c.Description())
	}
	want := []string{"Boom", "Commit", "Diff", "Fail", "Log", "PropSet", "Resolve", "Status"}
	if diff := cmp.Diff(want, methodNames(c)); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}

	st, ok := c.Method("st")
	if !ok || st.Name() != "Status" {
		t.Fatalf("Method(st) = %v, %v; want Status", st, ok)
	}
	if st.Description() != "Show working copy status" {
		t.Errorf("Status description = %q", st.Description())
	}
	if len(st.Parameters()) != 0 {
		t.Errorf("Status has %d parameters, want 0", len(st.Parameters()))
	}
	if st.Component() != c {
		t.Errorf("Status.Component() is not the describing component")
	}
}

func TestParameters(t *testing.T) {
	c := mustReflect(t, &svn{})

	commit, _ := c.Method("commit")
	params := commit.Parameters()
	if len(params) != 2 {
		t.Fatalf("Commit has %d parameters, want 2", len(params))
	}
	path, msg := params[0], params[1]
	if path.Name() != "path" || path.ShortName() != "p" || path.Index() != 0 {
		t.Errorf("path = {%q %q %d}", path.Name(), path.ShortName(), path.Index())
	}
	if msg.Name() != "message" || msg.ShortName() != "m" || msg.Index() != 1 {
		t.Errorf("message = {%q %q %d}", msg.Name(), msg.ShortName(), msg.Index())
	}
	if path.IsOptional() || path.IsVariadic() || path.IsBoolean() {
		t.Errorf("path flags = optional %t variadic %t bool %t, want all false", path.IsOptional(), path.IsVariadic(), path.IsBoolean())
	}
	if path.Description() != "Working copy path" {
		t.Errorf("path description = %q", path.Description())
	}
	if path.Method() != commit {
		t.Errorf("path.Method() is not Commit")
	}

	log, _ := c.Method("log")
	lp := log.Parameters()
	if len(lp) != 2 {
		t.Fatalf("Log has %d parameters, want 2 (unexported fields are skipped)", len(lp))
	}
	if !lp[0].IsOptional() || lp[0].DefaultValue() != 10 || lp[0].DefaultText() != "10" {
		t.Errorf("limit = optional %t default %v (%q)", lp[0].IsOptional(), lp[0].DefaultValue(), lp[0].DefaultText())
	}
	if !lp[1].IsBoolean() || lp[1].DefaultValue() != false {
		t.Errorf("verbose = bool %t default %v", lp[1].IsBoolean(), lp[1].DefaultValue())
	}

	diff, _ := c.Method("diff")
	files := diff.Parameters()[0]
	if !files.IsVariadic() || !files.IsOptional() {
		t.Errorf("files = variadic %t optional %t, want both", files.IsVariadic(), files.IsOptional())
	}
	if files.ElemType() != reflect.TypeFor[string]() {
		t.Errorf("files.ElemType() = %s, want string", files.ElemType())
	}
	if got, ok := files.DefaultValue().([]string); !ok || got == nil || len(got) != 0 {
		t.Errorf("files.DefaultValue() = %#v, want empty []string", files.DefaultValue())
	}
}

func TestIsNamed(t *testing.T) {
	c := mustReflect(t, &svn{})
	commit, _ := c.Method("Commit")
	path, _ := commit.Parameter("path")
	accept, _ := c.Method("resolve")
	acceptParam := accept.Parameters()[0]

	tests := []struct {
		name  string
		query string
		named interface{ IsNamed(string) bool }
		want  bool
	}{
		{"method name", "commit", commit, true},
		{"method name upper", "COMMIT", commit, true},
		{"method short", "CI", commit, true},
		{"method other", "status", commit, false},
		{"method empty", "", commit, false},
		{"method blank", "  ", commit, false},
		{"param name", "PATH", path, true},
		{"param short", "p", path, true},
		{"param other", "m", path, false},
		{"param no short empty query", "", acceptParam, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.named.IsNamed(tt.query); got != tt.want {
				t.Errorf("IsNamed(%q) = %t, want %t", tt.query, got, tt.want)
			}
		})
	}

	if _, ok := c.Method(""); ok {
		t.Errorf("Method(\"\") found a method")
	}
	if _, ok := commit.Parameter(" "); ok {
		t.Errorf("Parameter(\" \") found a parameter")
	}
}

func TestMethodsIsCopy(t *testing.T) {
	c := mustReflect(t, &svn{})
	ms := c.Methods()
	ms[0] = nil
	if c.Methods()[0] == nil {
		t.Errorf("mutating Methods() changed the component")
	}
	commit, _ := c.Method("commit")
	ps := commit.Parameters()
	ps[0] = nil
	if commit.Parameters()[0] == nil {
		t.Errorf("mutating Parameters() changed the method")
	}
}

type dupShort struct{}

func (dupShort) CommandDocs() Docs {
	return Docs{Methods: map[string]MethodDoc{"Add": {Short: "a"}, "Amend": {Short: "A"}}}
}
func (dupShort) Add() error { return nil }
func (dupShort) Amend() error { return nil }

type shortIsName struct{}

func (shortIsName) CommandDocs() Docs {
	return Docs{Methods: map[string]MethodDoc{"Copy": {Short: "move"}}}
}
func (shortIsName) Copy() error { return nil }
func (shortIsName) Move() error { return nil }

type dupParamArgs struct {
	Path string `short:"p"`
	Port int    `short:"p"`
}

type dupParams struct{}

func (dupParams) Run(a dupParamArgs) error { return nil }

type renamedArgs struct {
	Target string
	Dest   string `name:"target"`
}

type renamedParams struct{}

func (renamedParams) Copy(a renamedArgs) error { return nil }

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		check func(error) bool
	}{
		{"short collides with short", dupShort{}, func(err error) bool {
			var e *DuplicateOperationError
			return errors.As(err, &e) && e.First == "Add" && e.Second == "Amend"
		}},
		{"short collides with name", shortIsName{}, func(err error) bool {
			var e *DuplicateOperationError
			return errors.As(err, &e)
		}},
		{"parameter shorts", dupParams{}, func(err error) bool {
			var e *DuplicateParameterError
			return errors.As(err, &e) && e.Method == "Run" && e.Name == "p"
		}},
		{"parameter names", renamedParams{}, func(err error) bool {
			var e *DuplicateParameterError
			return errors.As(err, &e) && e.Second == "target"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reflect(reflect.TypeOf(tt.v))
			if err == nil {
				t.Fatalf("Reflect(%T) succeeded, want error", tt.v)
			}
			if !tt.check(err) {
				t.Errorf("Reflect(%T) error = %v (%T)", tt.v, err, err)
			}
		})
	}
}

func TestRegisteredDuplicates(t *testing.T) {
	noop := func(context.Context) error { return nil }
	_, err := New("x", []MethodSpec{
		Action("build", noop),
		Action("Build", noop),
	})
	var e *DuplicateOperationError
	if !errors.As(err, &e) {
		t.Fatalf("New() error = %v, want *DuplicateOperationError", err)
	}
	if !strings.Contains(err.Error(), "build") {
		t.Errorf("error %q does not name the operation", err)
	}
}

type unmarkedSlice struct {
	Tags []string
}

type variadicNotSlice struct {
	Files string `variadic:"true"`
}

type variadicNotLast struct {
	Files []string `variadic:"true"`
	Path  string
}

type variadicDefault struct {
	Files []string `variadic:"true" default:"a"`
}

type badDefault struct {
	Count int `default:"many"`
}

type chanParam struct {
	C chan int
}

func TestUnsupportedParameters(t *testing.T) {
	run := func(ctx context.Context, a unmarkedSlice) error { return nil }
	if _, err := New("lenient", []MethodSpec{Func("tag", run)}); err != nil {
		t.Errorf("unmarked slice without StrictSlices: error = %v", err)
	}
	_, err := New("strict", []MethodSpec{Func("tag", run)}, StrictSlices())
	var ue *UnsupportedParameterError
	if !errors.As(err, &ue) || ue.Parameter != "tags" {
		t.Errorf("unmarked slice with StrictSlices: error = %v, want *UnsupportedParameterError for tags", err)
	}

	tests := []struct {
		name string
		spec MethodSpec
	}{
		{"variadic not slice", Func("a", func(context.Context, variadicNotSlice) error { return nil })},
		{"variadic not last", Func("a", func(context.Context, variadicNotLast) error { return nil })},
		{"variadic default", Func("a", func(context.Context, variadicDefault) error { return nil })},
		{"no conversion", Func("a", func(context.Context, chanParam) error { return nil })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("x", []MethodSpec{tt.spec})
			var ue *UnsupportedParameterError
			if !errors.As(err, &ue) {
				t.Errorf("New() error = %v, want *UnsupportedParameterError", err)
			}
		})
	}

	_, err = New("x", []MethodSpec{Func("a", func(context.Context, badDefault) error { return nil })})
	var de *DefaultValueError
	if !errors.As(err, &de) || de.Value != "many" {
		t.Errorf("bad default: error = %v, want *DefaultValueError", err)
	}

	_, err = New("x", []MethodSpec{Func("a", func(context.Context, int) error { return nil })})
	var se *SignatureError
	if !errors.As(err, &se) {
		t.Errorf("non-struct argument: error = %v, want *SignatureError", err)
	}
}

func TestInvoke(t *testing.T) {
	s := &svn{}
	c := mustReflect(t, s)
	ctx := context.Background()

	invoke := func(name string, values ...any) error {
		t.Helper()
		m, ok := c.Method(name)
		if !ok {
			t.Fatalf("no method %q", name)
		}
		return m.Invoke(ctx, s, values)
	}

	for _, step := range []struct {
		name   string
		values []any
	}{
		{"status", nil},
		{"commit", []any{".", "fix"}},
		{"propset", []any{"svn:ignore", "*", "."}},
		{"diff", []any{[]string{"a", "b"}}},
		{"resolve", []any{"mine", []string{}}},
		{"log", []any{3, true}},
	} {
		if err := invoke(step.name, step.values...); err != nil {
			t.Fatalf("Invoke(%s) error = %v", step.name, err)
		}
	}
	want := []string{
		"status",
		"commit . fix",
		"propset svn:ignore * .",
		"diff [a b]",
		"resolve mine []",
		"log 3 true",
	}
	if diff := cmp.Diff(want, s.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}

	if err := invoke("fail"); !errors.Is(err, errFail) {
		t.Errorf("Invoke(fail) error = %v, want errFail", err)
	}

	err := invoke("boom")
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "boom" || pe.Method != "Boom" {
		t.Errorf("Invoke(boom) error = %v, want *PanicError", err)
	}

	m, _ := c.Method("commit")
	if err := m.Invoke(ctx, s, []any{"only one"}); err == nil {
		t.Errorf("Invoke with too few values succeeded")
	}
	if err := m.Invoke(ctx, nil, []any{"a", "b"}); err == nil {
		t.Errorf("Invoke with nil receiver succeeded")
	}
	if err := m.Invoke(ctx, struct{}{}, []any{"a", "b"}); err == nil {
		t.Errorf("Invoke with wrong receiver succeeded")
	}
}

type base struct{ calls *[]string }

func (b base) Hello() error {
	*b.calls = append(*b.calls, "base hello")
	return nil
}

func (b base) Bye() error {
	*b.calls = append(*b.calls, "base bye")
	return nil
}

type derived struct{ base }

func (d derived) Hello() error {
	*d.calls = append(*d.calls, "derived hello")
	return nil
}

func TestEmbeddedOverride(t *testing.T) {
	var calls []string
	d := derived{base{calls: &calls}}
	c := mustReflect(t, d)
	if diff := cmp.Diff([]string{"Bye", "Hello"}, methodNames(c)); diff != "" {
		t.Fatalf("methods mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"hello", "bye"} {
		m, _ := c.Method(name)
		if err := m.Invoke(context.Background(), d, nil); err != nil {
			t.Fatalf("Invoke(%s) error = %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"derived hello", "base bye"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

type greetArgs struct {
	Name  string `short:"n"`
	Times int    `default:"1"`
}

func TestRegistered(t *testing.T) {
	var got []greetArgs
	c, err := New("hello", []MethodSpec{
		Func("greet", func(ctx context.Context, a *greetArgs) error {
			got = append(got, *a)
			return nil
		}, Short("g"), Help("Say hello")),
		Action("version", func(context.Context) error { return nil }),
	}, WithDocs(Docs{Description: "Greeter"}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Type() != nil || c.Description() != "Greeter" {
		t.Errorf("component = type %v description %q", c.Type(), c.Description())
	}
	if diff := cmp.Diff([]string{"greet", "version"}, methodNames(c)); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
	m, ok := c.Method("G")
	if !ok || m.Description() != "Say hello" {
		t.Fatalf("Method(G) = %v, %v", m, ok)
	}
	if err := m.Invoke(context.Background(), nil, []any{"bob", 2}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if diff := cmp.Diff([]greetArgs{{Name: "bob", Times: 2}}, got); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterNilFuncPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Func with nil fn did not panic")
		}
	}()
	Func[greetArgs]("greet", nil)
}

func TestCache(t *testing.T) {
	cache := NewCache()
	typ := reflect.TypeOf(&svn{})

	var wg sync.WaitGroup
	results := make([]*Component, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := cache.Get(typ)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			results[i] = c
		}()
	}
	wg.Wait()
	for i, c := range results {
		if c != results[0] {
			t.Errorf("results[%d] is a different component", i)
		}
	}

	if _, err := cache.Get(reflect.TypeOf(dupShort{})); err == nil {
		t.Errorf("Get(dupShort) succeeded, want error")
	}
	if _, err := cache.Get(nil); !errors.Is(err, ErrNilType) {
		t.Errorf("Get(nil) error = %v, want ErrNilType", err)
	}
}

type lister struct{}

func (lister) List(ctx context.Context) error { return nil }

func localSvn() reflect.Type {
	type tool struct{ *svn }
	return reflect.TypeOf(&tool{})
}

func localLister() reflect.Type {
	type tool struct{ lister }
	return reflect.TypeOf(&tool{})
}

func TestCacheLocalTypes(t *testing.T) {
	a, b := localSvn(), localLister()
	if a.String() != b.String() {
		t.Fatalf("type names differ: %s, %s", a, b)
	}

	cache := NewCache()
	var wg sync.WaitGroup
	got := make([]*Component, 2)
	for i, typ := range []reflect.Type{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := cache.Get(typ)
			if err != nil {
				t.Errorf("Get(%s) error = %v", typ, err)
				return
			}
			got[i] = c
		}()
	}
	wg.Wait()
	if t.Failed() {
		return
	}

	for i, typ := range []reflect.Type{a, b} {
		if got[i].Type() != typ {
			t.Errorf("component %d Type() = %v, want its own type", i, got[i].Type())
		}
	}
	if _, ok := got[0].Method("Commit"); !ok {
		t.Errorf("first component is missing Commit")
	}
	if _, ok := got[1].Method("List"); !ok {
		t.Errorf("second component is missing List")
	}
	if _, ok := got[1].Method("Commit"); ok {
		t.Errorf("second component has Commit")
	}
}
