package plantuml_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docforge/docforge/internal/adapters/outbound/plantuml"
	"github.com/docforge/docforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diagram = "@startuml\nclass shop.Order {\n}\n@enduml\n"

func TestEncode_RoundTrip(t *testing.T) {
	encoded, err := plantuml.Encode(diagram)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "=")

	decoded, err := plantuml.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, diagram, decoded)
}

func TestServerRenderer_Render(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	r := plantuml.NewServerRenderer(srv.URL+"/plantuml/", time.Second)
	img, err := r.Render(context.Background(), diagram, domain.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, []byte("PNGDATA"), img)

	require.True(t, strings.HasPrefix(gotPath, "/plantuml/png/"), gotPath)
	decoded, err := plantuml.Decode(strings.TrimPrefix(gotPath, "/plantuml/png/"))
	require.NoError(t, err)
	assert.Equal(t, diagram, decoded)
}

func TestServerRenderer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad diagram", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := plantuml.NewServerRenderer(srv.URL, time.Second).Render(context.Background(), diagram, domain.FormatSVG)
	var renderErr *domain.RenderingError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "svg", renderErr.Format)
	assert.Contains(t, err.Error(), "400")
}

func TestServerRenderer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := plantuml.NewServerRenderer(url, time.Second).Render(context.Background(), diagram, domain.FormatPNG)
	var renderErr *domain.RenderingError
	assert.ErrorAs(t, err, &renderErr)
}

type fakeRunner struct {
	got    domain.Command
	result *domain.CommandResult
	err    error
}

func (f *fakeRunner) Run(_ context.Context, cmd domain.Command) (*domain.CommandResult, error) {
	f.got = cmd
	return f.result, f.err
}

func TestCommandRenderer_Render(t *testing.T) {
	runner := &fakeRunner{result: &domain.CommandResult{Stdout: "<svg/>"}}
	r := plantuml.NewCommandRenderer("plantuml", time.Minute, runner)

	img, err := r.Render(context.Background(), diagram, domain.FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(img))
	assert.Equal(t, "plantuml", runner.got.Name)
	assert.Equal(t, []string{"-tsvg", "-pipe"}, runner.got.Args)
	assert.Equal(t, diagram, runner.got.Stdin)
	assert.Equal(t, time.Minute, runner.got.Timeout)
}

func TestCommandRenderer_Failures(t *testing.T) {
	exit := &fakeRunner{result: &domain.CommandResult{ExitCode: 1, Stderr: "Syntax Error?"}}
	_, err := plantuml.NewCommandRenderer("plantuml", 0, exit).Render(context.Background(), diagram, domain.FormatPNG)
	var renderErr *domain.RenderingError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "Syntax Error?")

	missing := &fakeRunner{err: errors.New("executable not found")}
	_, err = plantuml.NewCommandRenderer("plantuml", 0, missing).Render(context.Background(), diagram, domain.FormatPNG)
	assert.ErrorAs(t, err, &renderErr)
}

func TestNewRenderer_SelectsMode(t *testing.T) {
	s := domain.DefaultSettings().Renderer
	_, isServer := plantuml.NewRenderer(s, nil).(*plantuml.ServerRenderer)
	assert.True(t, isServer)

	s.Mode = domain.RendererModeCommand
	_, isCommand := plantuml.NewRenderer(s, &fakeRunner{}).(*plantuml.CommandRenderer)
	assert.True(t, isCommand)
}
